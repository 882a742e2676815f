package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
	"github.com/sefazor/classgather-backend/pkg/qrcode"
	"github.com/sefazor/classgather-backend/pkg/storage"
)

// UTC+8, testler makinenin saat diliminden bağımsız olsun diye
var testLoc = time.FixedZone("UTC+8", 8*60*60)

var (
	alice = models.Session{UserName: "Alice", DeviceID: "device-a"}
	bob   = models.Session{UserName: "Bob", DeviceID: "device-b"}
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Set(layout string) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", layout, testLoc)
	if err != nil {
		panic(err)
	}
	c.t = t
}

type testEnv struct {
	store      *kvstore.MemoryStore
	events     *repository.EventRepository
	rsvps      *repository.RSVPRepository
	clock      *clock
	event      *EventService
	attendance *AttendanceService
	comments   *CommentService
	photos     *PhotoService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := kvstore.NewMemoryStore()
	logger := zap.NewNop()
	c := &clock{}
	c.Set("2024-06-01 09:00:00")

	env := &testEnv{
		store:  store,
		events: repository.NewEventRepository(store),
		rsvps:  repository.NewRSVPRepository(store),
		clock:  c,
	}
	env.event = NewEventService(env.events, env.rsvps, repository.NewPhotoRepository(store), qrcode.NewQRService("https://class.example/events/"), logger)
	env.attendance = NewAttendanceService(env.events, env.rsvps, logger)
	env.comments = NewCommentService(repository.NewCommentRepository(store), env.events)
	env.photos = NewPhotoService(repository.NewPhotoRepository(store), env.events, storage.NewDataURLEncoder(1<<20), logger)

	env.event.now = c.Now
	env.attendance.now = c.Now
	env.comments.now = c.Now
	env.photos.now = c.Now
	return env
}

// createReunion Alice'in 2024-06-01 18:00 etkinliğini oluşturur
func (env *testEnv) createReunion(t *testing.T) *models.Event {
	t.Helper()
	event, err := env.event.CreateEvent(context.Background(), alice, models.EventRequest{
		Title:         "Class Reunion",
		Date:          "2024-06-01",
		Time:          "18:00",
		Location:      "Old School Hall",
		Cost:          50,
		PaymentQRCode: "data:image/png;base64,UEFZ",
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	return event
}
