package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
)

// failingStore belirli bir key'e yazımı kota hatasıyla reddeder
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

// slowStore her okumayı geciktirir, eşzamanlı index güncellemeleri iç içe geçer
type slowStore struct {
	kvstore.Store
}

func (s slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(time.Millisecond)
	return s.Store.Get(ctx, key)
}

func int64Ptr(v int64) *int64 { return &v }

func TestEventRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(kvstore.NewMemoryStore())

	first := &models.Event{ID: "e1", Title: "Reunion", Date: "2024-06-01", Time: "18:00", Location: "Old School", Cost: 50, Organizer: "Alice", Timestamp: 1}
	second := &models.Event{ID: "e2", Title: "Hike", Date: "2024-07-01", Time: "09:00", Location: "Hills", Organizer: "Bob", PaymentQRCode: "data:image/png;base64,AAAA", Timestamp: 2}

	for _, e := range []*models.Event{first, second} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create(%s) error = %v", e.ID, err)
		}
	}

	got, err := repo.GetByID(ctx, "e2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("GetByID() = %+v, want %+v", got, second)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "e2" || list[1].ID != "e1" {
		t.Errorf("List() order = %v, want newest first", list)
	}

	if err := repo.Create(ctx, first); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicate", err)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEventRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(kvstore.NewMemoryStore())

	event := &models.Event{ID: "e1", Title: "Reunion", Cost: 50, Organizer: "Alice"}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	event.Cost = 80
	if err := repo.Update(ctx, event); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := repo.GetByID(ctx, "e1")
	if got.Cost != 80 {
		t.Errorf("Cost got = %v, want 80", got.Cost)
	}

	if err := repo.Update(ctx, &models.Event{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("Update must not append, got %d events", len(list))
	}
}

func TestInsertRollsBackOnStorageFull(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemoryStore()
	repo := NewEventRepository(&failingStore{Store: mem, failKey: keyEvents})

	err := repo.Create(ctx, &models.Event{ID: "e1", Title: "Too big"})
	if !errors.Is(err, ErrStorageFull) {
		t.Fatalf("Create() error = %v, want ErrStorageFull", err)
	}
	if mem.Len() != 0 {
		t.Errorf("partial write left %d keys behind", mem.Len())
	}
}

func TestRSVPRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository(kvstore.NewMemoryStore())

	alice := &models.RSVP{ID: "r1", EventID: "e1", UserName: "Alice", Contact: "Alice Smith", Status: models.RSVPStatusPending, Timestamp: 10}
	bob := &models.RSVP{ID: "r2", EventID: "e1", UserName: "Bob/B", Contact: "Bob", Status: models.RSVPStatusPending, Timestamp: 5}
	other := &models.RSVP{ID: "r3", EventID: "e2", UserName: "Alice", Contact: "Alice", Status: models.RSVPStatusPending, Timestamp: 1}

	for _, r := range []*models.RSVP{alice, bob, other} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create(%s) error = %v", r.ID, err)
		}
	}

	t.Run("unique per event and user", func(t *testing.T) {
		dup := *alice
		dup.ID = "r9"
		if err := repo.Create(ctx, &dup); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("Create(duplicate) error = %v, want ErrDuplicate", err)
		}
		list, _ := repo.ListByEvent(ctx, "e1")
		if len(list) != 2 {
			t.Errorf("ListByEvent() len = %d, want 2", len(list))
		}
	})

	t.Run("append order", func(t *testing.T) {
		list, err := repo.ListByEvent(ctx, "e1")
		if err != nil {
			t.Fatalf("ListByEvent() error = %v", err)
		}
		if list[0].UserName != "Alice" || list[1].UserName != "Bob/B" {
			t.Errorf("ListByEvent() order = %v", list)
		}
	})

	t.Run("check-in stamp round trip", func(t *testing.T) {
		stamped := *alice
		stamped.CheckInTime = int64Ptr(12345)
		if err := repo.Update(ctx, &stamped); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		got, err := repo.Get(ctx, "e1", "Alice")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !reflect.DeepEqual(got, &stamped) {
			t.Errorf("Get() = %+v, want %+v", got, stamped)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "e1", "Bob/B"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Get(ctx, "e1", "Bob/B"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() after delete error = %v", err)
		}
		list, _ := repo.ListByEvent(ctx, "e1")
		if len(list) != 1 || list[0].UserName != "Alice" {
			t.Errorf("ListByEvent() after delete = %v", list)
		}
		if err := repo.Delete(ctx, "e1", "Bob/B"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
		}
		if _, err := repo.Get(ctx, "e2", "Alice"); err != nil {
			t.Errorf("other event's RSVP affected: %v", err)
		}
	})
}

func TestCommentsAndPhotosNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	comments := NewCommentRepository(store)
	photos := NewPhotoRepository(store)

	for _, c := range []models.Comment{
		{ID: "c1", EventID: "e1", UserName: "Alice", Content: "first", Timestamp: 100},
		{ID: "c2", EventID: "e1", UserName: "Bob", Content: "late insert, old stamp", Timestamp: 50},
		{ID: "c3", EventID: "e1", UserName: "Cara", Content: "newest", Timestamp: 300},
		{ID: "c4", EventID: "e2", UserName: "Dan", Content: "elsewhere", Timestamp: 999},
	} {
		c := c
		if err := comments.Create(ctx, &c); err != nil {
			t.Fatalf("Create(%s) error = %v", c.ID, err)
		}
	}

	got, err := comments.ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("ListByEvent() error = %v", err)
	}
	var ids []string
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "c3,c1,c2" {
		t.Errorf("comment order = %v, want c3,c1,c2", ids)
	}

	for _, p := range []models.Photo{
		{ID: "p1", EventID: "e1", UserName: "Alice", URL: "data:image/png;base64,AA", Timestamp: 1},
		{ID: "p2", EventID: "e1", UserName: "Bob", URL: "https://cdn/p2.jpg", Timestamp: 2},
	} {
		p := p
		if err := photos.Create(ctx, &p); err != nil {
			t.Fatalf("Create(%s) error = %v", p.ID, err)
		}
	}
	gotPhotos, _ := photos.GetByEventID(ctx, "e1")
	if len(gotPhotos) != 2 || gotPhotos[0].ID != "p2" {
		t.Errorf("photo order = %v, want p2 first", gotPhotos)
	}
	count, _ := photos.CountByEventID(ctx, "e1")
	if count != 2 {
		t.Errorf("CountByEventID() = %d, want 2", count)
	}
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(kvstore.NewMemoryStore())

	name, err := repo.CurrentUser(ctx, "device-1")
	if err != nil || name != "" {
		t.Fatalf("CurrentUser() on empty store = %q, %v", name, err)
	}

	_ = repo.SetCurrentUser(ctx, "device-1", "Alice")
	if name, _ := repo.CurrentUser(ctx, "device-1"); name != "Alice" {
		t.Errorf("CurrentUser() = %q, want Alice", name)
	}
	_ = repo.ClearCurrentUser(ctx, "device-1")
	if name, _ := repo.CurrentUser(ctx, "device-1"); name != "" {
		t.Errorf("CurrentUser() after clear = %q", name)
	}

	if ok, _ := repo.IsDeviceVerified(ctx, "device-1"); ok {
		t.Errorf("new device must not be verified")
	}
	_ = repo.MarkDeviceVerified(ctx, "device-1")
	if ok, _ := repo.IsDeviceVerified(ctx, "device-1"); !ok {
		t.Errorf("device should be verified")
	}
}

func TestRSVPRepositoryConcurrentJoins(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository(slowStore{kvstore.NewMemoryStore()})

	const joins = 20
	var wg sync.WaitGroup
	errs := make(chan error, joins)
	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, &models.RSVP{ID: fmt.Sprint(i), EventID: "e1", UserName: fmt.Sprintf("user-%d", i), Status: "pending"})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	roster, err := repo.ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("ListByEvent() error = %v", err)
	}
	if len(roster) != joins {
		t.Errorf("roster size = %d, want %d", len(roster), joins)
	}
}

func TestRSVPRepositoryConcurrentDuplicateJoin(t *testing.T) {
	ctx := context.Background()
	repo := NewRSVPRepository(slowStore{kvstore.NewMemoryStore()})

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &models.RSVP{ID: "r1", EventID: "e1", UserName: "Alice", Status: "pending"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrDuplicate):
			t.Fatalf("Create() error = %v", err)
		}
	}
	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}

	roster, _ := repo.ListByEvent(ctx, "e1")
	if len(roster) != 1 {
		t.Errorf("roster size = %d, want 1", len(roster))
	}
}
