package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrStorageFull depolama kotası aşıldı, değişiklik tamamen geri alındı
	ErrStorageFull = errors.New("storage quota exceeded, the change was not saved")
)

// Key namespace'leri
const (
	keyEvents   = "class_gather_events"
	keyRSVPs    = "class_gather_rsvps"
	keyComments = "class_gather_comments"
	keyPhotos   = "class_gather_photos"
	keyUser     = "class_gather_user"
	keyVerified = "class_gather_verified"

	// yorum ve fotoğraf index'leri entity key'leriyle çakışmasın
	byEvent = "by-event"
)

func key(namespace string, parts ...string) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// kv JSON encode/decode ve hata çevirisi yapan ince katman.
// Cache yok, her okuma store'a gider.
type kv struct {
	store kvstore.Store
}

func (k kv) load(ctx context.Context, key string, dst interface{}) error {
	raw, err := k.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (k kv) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := k.store.Set(ctx, key, raw); err != nil {
		if errors.Is(err, kvstore.ErrQuotaExceeded) {
			return ErrStorageFull
		}
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k kv) remove(ctx context.Context, key string) error {
	if err := k.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (k kv) exists(ctx context.Context, key string) (bool, error) {
	_, err := k.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return true, nil
}

func (k kv) loadIndex(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if err := k.load(ctx, key, &ids); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return ids, nil
}

// indexLocks index key başına bir mutex tutar. Index okuma-değiştirme-yazma
// adımları aynı key üzerinde sırayla çalışır, eşzamanlı eklemeler birbirini ezmez.
var indexLocks sync.Map

func lockIndex(indexKey string) func() {
	v, _ := indexLocks.LoadOrStore(indexKey, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// insert entity'yi yazar, sonra index'e ekler. Entity zaten varsa
// ErrDuplicate döner. Index yazılamazsa entity silinir; yarım kalmış bir
// ekleme görünmez.
func (k kv) insert(ctx context.Context, entityKey string, entity interface{}, indexKey, member string, prepend bool) error {
	unlock := lockIndex(indexKey)
	defer unlock()

	exists, err := k.exists(ctx, entityKey)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	index, err := k.loadIndex(ctx, indexKey)
	if err != nil {
		return err
	}

	if err := k.save(ctx, entityKey, entity); err != nil {
		return err
	}

	if prepend {
		index = append([]string{member}, index...)
	} else {
		index = append(index, member)
	}

	if err := k.save(ctx, indexKey, index); err != nil {
		_ = k.remove(ctx, entityKey)
		return err
	}
	return nil
}

// loadMembers index sırasıyla entity'leri okur. Index'te kalıp entity'si
// silinmiş üyeler atlanır.
func loadMembers[T any](ctx context.Context, k kv, index []string, keyOf func(member string) string) ([]T, error) {
	out := make([]T, 0, len(index))
	for _, member := range index {
		var item T
		if err := k.load(ctx, keyOf(member), &item); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// discard entity'yi siler ve index'ten çıkarır. Entity yoksa ErrNotFound
// döner. Index yazımı başarısız olursa kalan üye okuma sırasında atlanır.
func (k kv) discard(ctx context.Context, entityKey, indexKey, member string) error {
	unlock := lockIndex(indexKey)
	defer unlock()

	exists, err := k.exists(ctx, entityKey)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if err := k.remove(ctx, entityKey); err != nil {
		return err
	}

	index, err := k.loadIndex(ctx, indexKey)
	if err != nil {
		return err
	}
	kept := index[:0]
	for _, m := range index {
		if m != member {
			kept = append(kept, m)
		}
	}
	return k.save(ctx, indexKey, kept)
}
