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
	"github.com/sefazor/classgather-backend/pkg/qrcode"
)

const (
	DefaultEventTime   = "12:00"
	DefaultDescription = "No description yet"
)

// Kapak seçilmezse kullanılan hazır görseller
var CoverOptions = []string{
	"https://picsum.photos/800/400?random=1",
	"https://picsum.photos/800/400?random=2",
	"https://picsum.photos/800/400?random=3",
	"https://picsum.photos/800/400?random=4",
}

type EventService struct {
	eventRepo *repository.EventRepository
	rsvpRepo  *repository.RSVPRepository
	photoRepo *repository.PhotoRepository
	qr        *qrcode.QRService
	logger    *zap.Logger
	now       func() time.Time
}

func NewEventService(
	eventRepo *repository.EventRepository,
	rsvpRepo *repository.RSVPRepository,
	photoRepo *repository.PhotoRepository,
	qr *qrcode.QRService,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		photoRepo: photoRepo,
		qr:        qr,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, session models.Session, req models.EventRequest) (*models.Event, error) {
	if session.IsAnonymous() {
		return nil, ErrLoginRequired
	}
	if strings.TrimSpace(req.Title) == "" || req.Date == "" || strings.TrimSpace(req.Location) == "" {
		return nil, ErrTitleRequired
	}
	if req.Cost < 0 {
		return nil, ErrInvalidCost
	}

	event := &models.Event{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Date:          req.Date,
		Time:          req.Time,
		Location:      req.Location,
		Cost:          req.Cost,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		PaymentQRCode: req.PaymentQRCode,
		Organizer:     session.UserName,
		Timestamp:     s.now().UnixMilli(),
	}
	if event.Time == "" {
		event.Time = DefaultEventTime
	}
	if event.Description == "" {
		event.Description = DefaultDescription
	}
	if event.CoverImage == "" {
		event.CoverImage = CoverOptions[0]
	}

	// Tarih/saat okunamıyorsa kaydetme
	if _, err := ScheduleOf(event, time.UTC); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("organizer", event.Organizer),
		zap.String("date", event.Date))
	return event, nil
}

func (s *EventService) getEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// GetEvent detay görünümü. Ödeme kodu sadece organizatöre ve check-in
// yapmış katılımcıya gösterilir.
func (s *EventService) GetEvent(ctx context.Context, session models.Session, eventID string, loc *time.Location) (*models.EventResponse, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	schedule, err := ScheduleOf(event, loc)
	if err != nil {
		return nil, err
	}

	resp := &models.EventResponse{
		Event:       *event,
		Status:      schedule.StatusAt(s.now()),
		IsOrganizer: event.Organizer == session.UserName,
		StartsAt:    schedule.StartsAt,
		CheckInAt:   schedule.CheckInOpensAt,
		EndsAt:      schedule.EndsAt,
	}

	// Galeri sekmesinin rozeti
	if resp.PhotoCount, err = s.photoRepo.CountByEventID(ctx, eventID); err != nil {
		return nil, err
	}

	if !resp.IsOrganizer {
		rsvp, err := s.rsvpRepo.Get(ctx, eventID, session.UserName)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if rsvp == nil || !rsvp.CheckedIn() {
			resp.PaymentQRCode = ""
		}
	}

	return resp, nil
}

func (s *EventService) ListEvents(ctx context.Context, query models.ListEventsQuery, loc *time.Location) ([]models.EventListItem, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := ComposeEventList(events, query.Search, query.Sort, s.now(), loc)
	// Liste görünümünde ödeme kodu hiç gösterilmez
	for i := range items {
		items[i].PaymentQRCode = ""
	}
	return items, nil
}

func (s *EventService) organizerEvent(ctx context.Context, session models.Session, eventID string) (*models.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// Yetki kontrolü
	if session.IsAnonymous() || event.Organizer != session.UserName {
		return nil, ErrNotOrganizer
	}
	return event, nil
}

func (s *EventService) UpdateCost(ctx context.Context, session models.Session, eventID string, cost float64) (*models.Event, error) {
	if cost < 0 {
		return nil, ErrInvalidCost
	}

	event, err := s.organizerEvent(ctx, session, eventID)
	if err != nil {
		return nil, err
	}

	previous := event.Cost
	event.Cost = cost
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event cost updated",
		zap.String("event_id", eventID),
		zap.Float64("from", previous),
		zap.Float64("to", cost))
	return event, nil
}

// UpdatePaymentCode organizatörün ödeme kodunu değiştirir. Link verilirse
// QR koda çevrilip data URL olarak saklanır.
func (s *EventService) UpdatePaymentCode(ctx context.Context, session models.Session, eventID string, req models.PaymentCodeRequest) (*models.Event, error) {
	event, err := s.organizerEvent(ctx, session, eventID)
	if err != nil {
		return nil, err
	}

	code := req.Image
	if code == "" && req.Link != "" {
		code, err = s.qr.EncodeDataURL(req.Link, qrcode.DefaultSize)
		if err != nil {
			return nil, err
		}
	}
	if code == "" {
		return nil, ErrPaymentCodeRequired
	}

	event.PaymentQRCode = code
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("payment code updated", zap.String("event_id", eventID), zap.Int("bytes", len(code)))
	return event, nil
}

// ShareQRCode davet linkinin PNG QR kodu
func (s *EventService) ShareQRCode(ctx context.Context, eventID string, size int) ([]byte, error) {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.qr.GenerateEventQRCode(eventID, size)
}
