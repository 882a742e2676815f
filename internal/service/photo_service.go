package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/pkg/storage"
)

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	eventRepo *repository.EventRepository
	encoder   storage.ImageEncoder
	logger    *zap.Logger
	now       func() time.Time
}

func NewPhotoService(
	photoRepo *repository.PhotoRepository,
	eventRepo *repository.EventRepository,
	encoder storage.ImageEncoder,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		eventRepo: eventRepo,
		encoder:   encoder,
		logger:    logger,
		now:       time.Now,
	}
}

// EncodeFile yüklenen dosyayı gömülebilir görsel referansına çevirir
func (s *PhotoService) EncodeFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	return s.encoder.Encode(ctx, file.Filename, src)
}

func (s *PhotoService) UploadPhoto(ctx context.Context, session models.Session, eventID string, file *multipart.FileHeader) (*models.Photo, error) {
	if session.IsAnonymous() {
		return nil, ErrLoginRequired
	}

	// Event'i kontrol et
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	url, err := s.EncodeFile(ctx, file)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserName:  session.UserName,
		URL:       url,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Yüklenen obje kayıtsız kalmasın
		if d, ok := s.encoder.(storage.Discarder); ok {
			if derr := d.Discard(ctx, url); derr != nil {
				s.logger.Warn("failed to discard orphaned upload", zap.String("url", url), zap.Error(derr))
			}
		}
		if errors.Is(err, repository.ErrStorageFull) {
			s.logger.Warn("photo rejected, storage full",
				zap.String("event_id", eventID),
				zap.Int64("file_size", file.Size))
		}
		return nil, err
	}

	s.logger.Info("photo uploaded", zap.String("event_id", eventID), zap.String("user", session.UserName))
	return photo, nil
}

func (s *PhotoService) GetEventPhotos(ctx context.Context, eventID string) ([]models.Photo, error) {
	return s.photoRepo.GetByEventID(ctx, eventID)
}
