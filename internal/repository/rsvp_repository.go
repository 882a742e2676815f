package repository

import (
	"context"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

// RSVPRepository kayıtları (eventId, userName) bileşik anahtarıyla tutar,
// aynı kullanıcı için ikinci bir kayıt yapısal olarak mümkün değil.
type RSVPRepository struct {
	kv kv
}

func NewRSVPRepository(store kvstore.Store) *RSVPRepository {
	return &RSVPRepository{kv: kv{store: store}}
}

func rsvpKey(eventID, userName string) string {
	return key(keyRSVPs, eventID, userName)
}

func rsvpIndexKey(eventID string) string {
	return key(keyRSVPs, eventID)
}

func (r *RSVPRepository) Create(ctx context.Context, rsvp *models.RSVP) error {
	return r.kv.insert(ctx, rsvpKey(rsvp.EventID, rsvp.UserName), rsvp, rsvpIndexKey(rsvp.EventID), rsvp.UserName, false)
}

func (r *RSVPRepository) Get(ctx context.Context, eventID, userName string) (*models.RSVP, error) {
	var rsvp models.RSVP
	if err := r.kv.load(ctx, rsvpKey(eventID, userName), &rsvp); err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ListByEvent kayıt sırasıyla döner
func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID string) ([]models.RSVP, error) {
	index, err := r.kv.loadIndex(ctx, rsvpIndexKey(eventID))
	if err != nil {
		return nil, err
	}
	return loadMembers[models.RSVP](ctx, r.kv, index, func(userName string) string {
		return rsvpKey(eventID, userName)
	})
}

func (r *RSVPRepository) Update(ctx context.Context, rsvp *models.RSVP) error {
	k := rsvpKey(rsvp.EventID, rsvp.UserName)
	exists, err := r.kv.exists(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return r.kv.save(ctx, k, rsvp)
}

// Delete kaydı ve roster index'indeki adı birlikte kaldırır
func (r *RSVPRepository) Delete(ctx context.Context, eventID, userName string) error {
	return r.kv.discard(ctx, rsvpKey(eventID, userName), rsvpIndexKey(eventID), userName)
}
