package repository

import (
	"context"
	"sort"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

type PhotoRepository struct {
	kv kv
}

func NewPhotoRepository(store kvstore.Store) *PhotoRepository {
	return &PhotoRepository{
		kv: kv{store: store},
	}
}

func photoKey(id string) string {
	return key(keyPhotos, id)
}

func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	return r.kv.insert(ctx, photoKey(photo.ID), photo, key(keyPhotos, byEvent, photo.EventID), photo.ID, true)
}

func (r *PhotoRepository) GetByEventID(ctx context.Context, eventID string) ([]models.Photo, error) {
	index, err := r.kv.loadIndex(ctx, key(keyPhotos, byEvent, eventID))
	if err != nil {
		return nil, err
	}
	photos, err := loadMembers[models.Photo](ctx, r.kv, index, photoKey)
	if err != nil {
		return nil, err
	}
	// En yeni önce
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].Timestamp > photos[j].Timestamp
	})
	return photos, nil
}

func (r *PhotoRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	index, err := r.kv.loadIndex(ctx, key(keyPhotos, byEvent, eventID))
	if err != nil {
		return 0, err
	}
	return len(index), nil
}
