package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	internalConfig "github.com/sefazor/classgather-backend/internal/config"
)

// CloudflareStorage fotoğrafları R2'ye (S3 uyumlu) yükler ve public URL döndürür
type CloudflareStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	maxBytes  int64
	logger    *zap.Logger
}

func NewCloudflareStorage(ctx context.Context, cfg *internalConfig.Config, logger *zap.Logger) (*CloudflareStorage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &CloudflareStorage{
		client:    client,
		bucket:    cfg.R2.Bucket,
		publicURL: strings.TrimSuffix(cfg.R2.PublicURL, "/"),
		maxBytes:  cfg.MaxImageBytes,
		logger:    logger,
	}, nil
}

// Upload dosyayı R2'ye yükler
func (s *CloudflareStorage) Upload(ctx context.Context, key string, src io.Reader, contentType string) error {
	buf, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws.Int64(int64(len(buf))),
		ContentType:   aws.String(contentType),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("r2 upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Debug("r2 upload done", zap.String("key", key), zap.Int("bytes", len(buf)))
	return nil
}

// Delete dosyayı R2'den siler
func (s *CloudflareStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	_, err := s.client.DeleteObject(ctx, input)
	return err
}

// Discard Encode'un döndürdüğü public URL'deki objeyi siler
func (s *CloudflareStorage) Discard(ctx context.Context, ref string) error {
	key := strings.TrimPrefix(ref, s.publicURL+"/")
	if key == ref {
		return fmt.Errorf("%q is not an R2 object of this bucket", ref)
	}
	return s.Delete(ctx, key)
}

// Encode ImageEncoder: kayıtta data URL yerine kısa bir public URL tutulur
func (s *CloudflareStorage) Encode(ctx context.Context, _ string, src io.Reader) (string, error) {
	buf, contentType, err := readImage(src, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("photos/%s%s", uuid.NewString(), extensionFor(contentType))
	if err := s.Upload(ctx, key, bytes.NewReader(buf), contentType); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}
