package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// DataURLEncoder görseli base64 data URL olarak kaydın içine gömer
type DataURLEncoder struct {
	maxBytes int64
}

func NewDataURLEncoder(maxBytes int64) *DataURLEncoder {
	return &DataURLEncoder{maxBytes: maxBytes}
}

func (e *DataURLEncoder) Encode(_ context.Context, _ string, src io.Reader) (string, error) {
	buf, contentType, err := readImage(src, e.maxBytes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(buf)), nil
}

// readImage içeriği okur ve gerçek tipini sniff eder, uzantıya güvenmez
func readImage(src io.Reader, maxBytes int64) ([]byte, string, error) {
	reader := src
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if maxBytes > 0 && int64(len(buf)) > maxBytes {
		return nil, "", ErrImageTooLarge
	}

	contentType := mimetype.Detect(buf).String()
	if !IsSupportedImage(contentType) {
		return nil, "", ErrUnsupportedImage
	}
	return buf, contentType, nil
}
