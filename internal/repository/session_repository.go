package repository

import (
	"context"
	"errors"

	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

// SessionRepository cihaz başına giriş yapmış kullanıcıyı ve şifre
// doğrulama bayrağını tutar
type SessionRepository struct {
	kv kv
}

func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{kv: kv{store: store}}
}

func (r *SessionRepository) SetCurrentUser(ctx context.Context, deviceID, userName string) error {
	return r.kv.save(ctx, key(keyUser, deviceID), userName)
}

// CurrentUser cihazda oturum yoksa boş string döner
func (r *SessionRepository) CurrentUser(ctx context.Context, deviceID string) (string, error) {
	var userName string
	err := r.kv.load(ctx, key(keyUser, deviceID), &userName)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return userName, err
}

func (r *SessionRepository) ClearCurrentUser(ctx context.Context, deviceID string) error {
	return r.kv.remove(ctx, key(keyUser, deviceID))
}

func (r *SessionRepository) MarkDeviceVerified(ctx context.Context, deviceID string) error {
	return r.kv.save(ctx, key(keyVerified, deviceID), true)
}

func (r *SessionRepository) IsDeviceVerified(ctx context.Context, deviceID string) (bool, error) {
	var verified bool
	err := r.kv.load(ctx, key(keyVerified, deviceID), &verified)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return verified, err
}
