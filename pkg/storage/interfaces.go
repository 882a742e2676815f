package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedImage = errors.New("file is not a supported image")
	ErrImageTooLarge    = errors.New("image is too large")
)

// ImageEncoder seçilen dosyayı gömülebilir bir görsel referansına çevirir
// (data URL ya da public URL)
type ImageEncoder interface {
	Encode(ctx context.Context, fileName string, src io.Reader) (string, error)
}

// Discarder kaydı yazılamayan bir görseli geri alabilen encoder'lar
// (data URL'lerde geri alınacak bir şey yok)
type Discarder interface {
	Discard(ctx context.Context, ref string) error
}

var supportedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsSupportedImage desteklenen resim formatlarını kontrol eder
func IsSupportedImage(mimeType string) bool {
	_, ok := supportedTypes[mimeType]
	return ok
}

func extensionFor(mimeType string) string {
	return supportedTypes[mimeType]
}
