package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound key yoksa döner
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrQuotaExceeded yazılmak istenen değer depolama kotasını aşarsa döner
	ErrQuotaExceeded = errors.New("kvstore: storage quota exceeded")
)

// Store whole-value key/value persistence. Values are opaque JSON documents;
// there is no partial write and no transaction across keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Limited rejects values larger than maxBytes before they reach the
// underlying store. maxBytes <= 0 disables the check.
type Limited struct {
	Store
	maxBytes int
}

func WithQuota(store Store, maxBytes int) Store {
	if maxBytes <= 0 {
		return store
	}
	return &Limited{Store: store, maxBytes: maxBytes}
}

func (l *Limited) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > l.maxBytes {
		return ErrQuotaExceeded
	}
	return l.Store.Set(ctx, key, value)
}
