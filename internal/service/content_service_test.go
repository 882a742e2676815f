package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
	"github.com/sefazor/classgather-backend/pkg/storage"
)

// 1x1 şeffaf PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// fileHeader multipart form üzerinden gerçek bir *multipart.FileHeader üretir
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	return form.File["photo"][0]
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)

	if _, err := env.comments.AddComment(ctx, bob, event.ID, "   "); !errors.Is(err, ErrContentRequired) {
		t.Errorf("AddComment(blank) error = %v, want ErrContentRequired", err)
	}
	if _, err := env.comments.AddComment(ctx, bob, "missing", "hi"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("AddComment(missing event) error = %v, want ErrEventNotFound", err)
	}

	for i, text := range []string{"first", "second", "third"} {
		env.clock.t = env.clock.t.Add(time.Duration(i+1) * time.Minute)
		if _, err := env.comments.AddComment(ctx, bob, event.ID, text); err != nil {
			t.Fatalf("AddComment(%s) error = %v", text, err)
		}
	}

	comments, err := env.comments.GetEventComments(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventComments() error = %v", err)
	}
	if len(comments) != 3 || comments[0].Content != "third" || comments[2].Content != "first" {
		t.Errorf("comments not newest first: %+v", comments)
	}
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)
	png, _ := base64.StdEncoding.DecodeString(tinyPNG)

	photo, err := env.photos.UploadPhoto(ctx, bob, event.ID, fileHeader(t, "pic.png", png))
	if err != nil {
		t.Fatalf("UploadPhoto() error = %v", err)
	}
	if !strings.HasPrefix(photo.URL, "data:image/png;base64,") || photo.UserName != "Bob" {
		t.Errorf("photo = %+v", photo)
	}

	if _, err := env.photos.UploadPhoto(ctx, bob, event.ID, fileHeader(t, "notes.txt", []byte("plain text"))); !errors.Is(err, storage.ErrUnsupportedImage) {
		t.Errorf("UploadPhoto(text) error = %v, want ErrUnsupportedImage", err)
	}

	photos, _ := env.photos.GetEventPhotos(ctx, event.ID)
	if len(photos) != 1 {
		t.Errorf("photos = %d, want 1", len(photos))
	}

	detail, err := env.event.GetEvent(ctx, bob, event.ID, testLoc)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if detail.PhotoCount != 1 {
		t.Errorf("PhotoCount = %d, want 1", detail.PhotoCount)
	}
}

func TestUploadPhotoStorageFull(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)
	png, _ := base64.StdEncoding.DecodeString(tinyPNG)

	// Sadece küçük değerlere izin veren depo: etkinlik sığar, fotoğraf sığmaz
	limited := kvstore.WithQuota(env.store, 64)
	photos := NewPhotoService(repository.NewPhotoRepository(limited), env.events, storage.NewDataURLEncoder(1<<20), zap.NewNop())

	if _, err := photos.UploadPhoto(ctx, bob, event.ID, fileHeader(t, "pic.png", png)); !errors.Is(err, repository.ErrStorageFull) {
		t.Fatalf("UploadPhoto() error = %v, want ErrStorageFull", err)
	}

	stored, _ := env.photos.GetEventPhotos(ctx, event.ID)
	if len(stored) != 0 {
		t.Errorf("partial write left %d photos", len(stored))
	}
}

// remoteEncoder yüklenmiş gibi davranıp Discard çağrılarını kaydeder
type remoteEncoder struct {
	discarded []string
}

func (e *remoteEncoder) Encode(context.Context, string, io.Reader) (string, error) {
	return "https://img.example/photos/1.png", nil
}

func (e *remoteEncoder) Discard(_ context.Context, ref string) error {
	e.discarded = append(e.discarded, ref)
	return nil
}

func TestUploadPhotoDiscardsOrphanedUpload(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)

	encoder := &remoteEncoder{}
	failing := &failingStore{Store: env.store, failKey: "class_gather_photos/by-event/" + event.ID}
	photos := NewPhotoService(repository.NewPhotoRepository(failing), env.events, encoder, zap.NewNop())

	if _, err := photos.UploadPhoto(ctx, bob, event.ID, fileHeader(t, "pic.png", []byte("x"))); !errors.Is(err, repository.ErrStorageFull) {
		t.Fatalf("UploadPhoto() error = %v, want ErrStorageFull", err)
	}
	if len(encoder.discarded) != 1 || encoder.discarded[0] != "https://img.example/photos/1.png" {
		t.Errorf("discarded = %v", encoder.discarded)
	}
}

// failingStore tek bir key'e yazımı kota hatasıyla reddeder
type failingStore struct {
	kvstore.Store
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return kvstore.ErrQuotaExceeded
	}
	return s.Store.Set(ctx, key, value)
}
