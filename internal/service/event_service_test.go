package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sefazor/classgather-backend/internal/models"
)

func TestCreateEventDefaults(t *testing.T) {
	env := setupTestEnv(t)

	event, err := env.event.CreateEvent(context.Background(), alice, models.EventRequest{
		Title:    "Picnic",
		Date:     "2024-08-01",
		Location: "Park",
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	if event.Time != DefaultEventTime || event.Description != DefaultDescription || event.CoverImage == "" {
		t.Errorf("defaults not applied: %+v", event)
	}
	if event.Organizer != "Alice" {
		t.Errorf("organizer = %q, want Alice", event.Organizer)
	}
	if event.Timestamp != env.clock.Now().UnixMilli() {
		t.Errorf("timestamp = %d", event.Timestamp)
	}
}

func TestCreateEventValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		session models.Session
		req     models.EventRequest
		wantErr error
	}{
		{name: "anonymous", session: models.Session{}, req: models.EventRequest{Title: "x", Date: "2024-08-01", Location: "y"}, wantErr: ErrLoginRequired},
		{name: "blank title", session: alice, req: models.EventRequest{Title: "  ", Date: "2024-08-01", Location: "y"}, wantErr: ErrTitleRequired},
		{name: "missing location", session: alice, req: models.EventRequest{Title: "x", Date: "2024-08-01"}, wantErr: ErrTitleRequired},
		{name: "negative cost", session: alice, req: models.EventRequest{Title: "x", Date: "2024-08-01", Location: "y", Cost: -1}, wantErr: ErrInvalidCost},
		{name: "malformed date", session: alice, req: models.EventRequest{Title: "x", Date: "tomorrow", Location: "y"}, wantErr: ErrInvalidSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.event.CreateEvent(ctx, tt.session, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	events, _ := env.events.List(ctx)
	if len(events) != 0 {
		t.Errorf("%d events stored after rejected creates", len(events))
	}
}

func TestUpdateCost(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)

	if _, _, err := env.attendance.Join(ctx, bob, event.ID, "Bob", testLoc); err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if _, err := env.comments.AddComment(ctx, bob, event.ID, "see you there"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	t.Run("non organizer is forbidden", func(t *testing.T) {
		if _, err := env.event.UpdateCost(ctx, bob, event.ID, 10); !errors.Is(err, ErrNotOrganizer) {
			t.Errorf("UpdateCost() error = %v, want ErrNotOrganizer", err)
		}
	})

	t.Run("negative cost", func(t *testing.T) {
		if _, err := env.event.UpdateCost(ctx, alice, event.ID, -5); !errors.Is(err, ErrInvalidCost) {
			t.Errorf("UpdateCost() error = %v, want ErrInvalidCost", err)
		}
	})

	t.Run("organizer updates cost only", func(t *testing.T) {
		updated, err := env.event.UpdateCost(ctx, alice, event.ID, 80)
		if err != nil {
			t.Fatalf("UpdateCost() error = %v", err)
		}
		if updated.Cost != 80 {
			t.Errorf("cost = %v, want 80", updated.Cost)
		}

		stored, _ := env.events.GetByID(ctx, event.ID)
		if stored.Cost != 80 || stored.Title != event.Title || stored.Timestamp != event.Timestamp {
			t.Errorf("stored event = %+v", stored)
		}
		roster, _ := env.rsvps.ListByEvent(ctx, event.ID)
		if len(roster) != 1 {
			t.Errorf("roster size = %d after cost change", len(roster))
		}
		comments, _ := env.comments.GetEventComments(ctx, event.ID)
		if len(comments) != 1 {
			t.Errorf("comments = %d after cost change", len(comments))
		}
	})
}

func TestUpdatePaymentCode(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)

	t.Run("link becomes a qr data url", func(t *testing.T) {
		updated, err := env.event.UpdatePaymentCode(ctx, alice, event.ID, models.PaymentCodeRequest{Link: "https://pay.example/alice"})
		if err != nil {
			t.Fatalf("UpdatePaymentCode() error = %v", err)
		}
		if !bytes.HasPrefix([]byte(updated.PaymentQRCode), []byte("data:image/png;base64,")) {
			t.Errorf("payment code = %.40q", updated.PaymentQRCode)
		}
	})

	t.Run("image stored as is", func(t *testing.T) {
		updated, err := env.event.UpdatePaymentCode(ctx, alice, event.ID, models.PaymentCodeRequest{Image: "https://cdn.example/qr.png"})
		if err != nil {
			t.Fatalf("UpdatePaymentCode() error = %v", err)
		}
		if updated.PaymentQRCode != "https://cdn.example/qr.png" {
			t.Errorf("payment code = %q", updated.PaymentQRCode)
		}
	})

	t.Run("empty request", func(t *testing.T) {
		if _, err := env.event.UpdatePaymentCode(ctx, alice, event.ID, models.PaymentCodeRequest{}); !errors.Is(err, ErrPaymentCodeRequired) {
			t.Errorf("UpdatePaymentCode() error = %v, want ErrPaymentCodeRequired", err)
		}
	})

	t.Run("non organizer", func(t *testing.T) {
		if _, err := env.event.UpdatePaymentCode(ctx, bob, event.ID, models.PaymentCodeRequest{Image: "x"}); !errors.Is(err, ErrNotOrganizer) {
			t.Errorf("UpdatePaymentCode() error = %v, want ErrNotOrganizer", err)
		}
	})
}

func TestGetEventRedactsPaymentCode(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	event := env.createReunion(t)

	if _, _, err := env.attendance.Join(ctx, bob, event.ID, "Bob", testLoc); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	organizerView, err := env.event.GetEvent(ctx, alice, event.ID, testLoc)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if !organizerView.IsOrganizer || organizerView.PaymentQRCode == "" {
		t.Errorf("organizer view = %+v", organizerView)
	}

	guestView, _ := env.event.GetEvent(ctx, bob, event.ID, testLoc)
	if guestView.PaymentQRCode != "" {
		t.Error("payment code visible before check-in")
	}
	if guestView.Status != models.StatusUpcoming {
		t.Errorf("status = %q, want upcoming", guestView.Status)
	}

	env.clock.Set("2024-06-01 17:35:00")
	if _, err := env.attendance.CheckIn(ctx, bob, event.ID, testLoc); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	guestView, _ = env.event.GetEvent(ctx, bob, event.ID, testLoc)
	if guestView.PaymentQRCode == "" {
		t.Error("payment code hidden after check-in")
	}

	list, err := env.event.ListEvents(ctx, models.ListEventsQuery{}, testLoc)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(list) != 1 || list[0].PaymentQRCode != "" {
		t.Errorf("list = %+v", list)
	}
	if list[0].Status != models.StatusCheckInOpen {
		t.Errorf("list status = %q", list[0].Status)
	}
}

func TestGetEventNotFound(t *testing.T) {
	env := setupTestEnv(t)
	if _, err := env.event.GetEvent(context.Background(), alice, "missing", testLoc); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("GetEvent() error = %v, want ErrEventNotFound", err)
	}
}

func TestShareQRCode(t *testing.T) {
	env := setupTestEnv(t)
	event := env.createReunion(t)

	png, err := env.event.ShareQRCode(context.Background(), event.ID, 128)
	if err != nil {
		t.Fatalf("ShareQRCode() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("not a png")
	}

	if _, err := env.event.ShareQRCode(context.Background(), "missing", 128); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("ShareQRCode() error = %v, want ErrEventNotFound", err)
	}
}
