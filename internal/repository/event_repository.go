package repository

import (
	"context"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

type EventRepository struct {
	kv kv
}

func NewEventRepository(store kvstore.Store) *EventRepository {
	return &EventRepository{kv: kv{store: store}}
}

func eventKey(id string) string {
	return key(keyEvents, id)
}

// Create yeni event'i listenin başına ekler (en yeni önce)
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.kv.insert(ctx, eventKey(event.ID), event, keyEvents, event.ID, true)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.kv.load(ctx, eventKey(id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// List oluşturulma sırasına göre, en yeni önce
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	index, err := r.kv.loadIndex(ctx, keyEvents)
	if err != nil {
		return nil, err
	}
	return loadMembers[models.Event](ctx, r.kv, index, eventKey)
}

// Update sadece ilgili event key'ini yeniden yazar. Son yazan kazanır.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	exists, err := r.kv.exists(ctx, eventKey(event.ID))
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return r.kv.save(ctx, eventKey(event.ID), event)
}
