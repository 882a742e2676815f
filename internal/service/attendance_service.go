package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
)

// AttendanceService katılım durumu: not-registered -> registered -> checked-in.
// checked-in son durumdur.
type AttendanceService struct {
	eventRepo *repository.EventRepository
	rsvpRepo  *repository.RSVPRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewAttendanceService(eventRepo *repository.EventRepository, rsvpRepo *repository.RSVPRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func StateOf(rsvp *models.RSVP) models.AttendanceState {
	switch {
	case rsvp == nil:
		return models.AttendanceNotRegistered
	case rsvp.CheckedIn():
		return models.AttendanceCheckedIn
	default:
		return models.AttendanceRegistered
	}
}

func (s *AttendanceService) load(ctx context.Context, session models.Session, eventID string, loc *time.Location) (*models.Event, models.EventStatus, *models.RSVP, error) {
	if session.IsAnonymous() {
		return nil, "", nil, ErrLoginRequired
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", nil, ErrEventNotFound
	}
	if err != nil {
		return nil, "", nil, err
	}

	status, err := DeriveStatus(event, s.now(), loc)
	if err != nil {
		return nil, "", nil, err
	}

	rsvp, err := s.rsvpRepo.Get(ctx, eventID, session.UserName)
	if errors.Is(err, repository.ErrNotFound) {
		return event, status, nil, nil
	}
	if err != nil {
		return nil, "", nil, err
	}
	return event, status, rsvp, nil
}

// Join kayıt oluşturur. Aynı kullanıcı tekrar katılmak isterse mevcut kayıt
// değiştirilmeden döner (created=false).
func (s *AttendanceService) Join(ctx context.Context, session models.Session, eventID, contact string, loc *time.Location) (*models.RSVP, bool, error) {
	event, status, existing, err := s.load(ctx, session, eventID, loc)
	if err != nil {
		return nil, false, err
	}
	if status == models.StatusEnded {
		return nil, false, ErrEventEnded
	}
	if strings.TrimSpace(contact) == "" {
		return nil, false, ErrNameRequired
	}
	if existing != nil {
		return existing, false, nil
	}

	rsvp := &models.RSVP{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		UserName:  session.UserName,
		Contact:   contact,
		Status:    models.RSVPStatusPending,
		Timestamp: s.now().UnixMilli(),
	}

	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		// Aynı anda iki istek: kazanan kaydı döndür
		if errors.Is(err, repository.ErrDuplicate) {
			current, getErr := s.rsvpRepo.Get(ctx, eventID, session.UserName)
			if getErr != nil {
				return nil, false, getErr
			}
			return current, false, nil
		}
		return nil, false, err
	}

	s.logger.Info("rsvp created", zap.String("event_id", eventID), zap.String("user", session.UserName))
	return rsvp, true, nil
}

// Cancel geri alınamaz, confirm=true olmadan çalışmaz
func (s *AttendanceService) Cancel(ctx context.Context, session models.Session, eventID string, confirm bool, loc *time.Location) error {
	_, status, rsvp, err := s.load(ctx, session, eventID, loc)
	if err != nil {
		return err
	}
	if rsvp == nil {
		return ErrNotRegistered
	}
	if status == models.StatusEnded {
		return ErrEventEnded
	}
	if rsvp.CheckedIn() {
		return ErrAlreadyCheckedIn
	}
	if !confirm {
		return ErrConfirmationRequired
	}

	if err := s.rsvpRepo.Delete(ctx, eventID, session.UserName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotRegistered
		}
		return err
	}

	s.logger.Info("rsvp cancelled", zap.String("event_id", eventID), zap.String("user", session.UserName))
	return nil
}

// CheckIn check-in penceresi açıkken ya da etkinlik bittikten sonra
// (settlement) çalışır. İdempotent: mevcut checkInTime asla ezilmez.
func (s *AttendanceService) CheckIn(ctx context.Context, session models.Session, eventID string, loc *time.Location) (*models.CheckInResponse, error) {
	event, status, rsvp, err := s.load(ctx, session, eventID, loc)
	if err != nil {
		return nil, err
	}
	if rsvp == nil {
		return nil, ErrNotRegistered
	}

	if !rsvp.CheckedIn() {
		if !CheckInAllowed(status) {
			return nil, ErrCheckInClosed
		}

		stamp := s.now().UnixMilli()
		rsvp.CheckInTime = &stamp
		if err := s.rsvpRepo.Update(ctx, rsvp); err != nil {
			return nil, err
		}
		s.logger.Info("checked in",
			zap.String("event_id", eventID),
			zap.String("user", session.UserName),
			zap.String("status", string(status)))
	}

	return &models.CheckInResponse{
		RSVP: *rsvp,
		Payment: models.PaymentInfo{
			Cost:          event.Cost,
			PaymentQRCode: event.PaymentQRCode,
		},
	}, nil
}

// Summary detay ekranının katılım sekmesi
func (s *AttendanceService) Summary(ctx context.Context, session models.Session, eventID string, loc *time.Location) (*models.AttendanceSummary, error) {
	_, status, mine, err := s.load(ctx, session, eventID, loc)
	if err != nil {
		return nil, err
	}

	roster, err := s.rsvpRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	checkedIn := 0
	for _, r := range roster {
		if r.CheckedIn() {
			checkedIn++
		}
	}

	state := StateOf(mine)
	return &models.AttendanceSummary{
		EventID:    eventID,
		Status:     status,
		State:      state,
		Mine:       mine,
		CanJoin:    state == models.AttendanceNotRegistered && status != models.StatusEnded,
		CanCancel:  state == models.AttendanceRegistered && status != models.StatusEnded,
		CanCheckIn: state == models.AttendanceRegistered && CheckInAllowed(status),
		Roster:     roster,
		Headcount:  len(roster),
		CheckedIn:  checkedIn,
	}, nil
}
