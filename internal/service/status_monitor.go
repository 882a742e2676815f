package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/models"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/pkg/notify"
)

const StatusChangedEvent = "event_status_changed"

type StatusChange struct {
	EventID string             `json:"event_id"`
	Title   string             `json:"title"`
	From    models.EventStatus `json:"from"`
	To      models.EventStatus `json:"to"`
	At      time.Time          `json:"at"`
}

// StatusMonitor durumları sabit aralıkla yeniden hesaplar; push mekanizması
// olmadığı için eşik geçişleri bu şekilde fark edilir.
type StatusMonitor struct {
	eventRepo *repository.EventRepository
	publisher notify.Publisher
	logger    *zap.Logger
	interval  time.Duration
	loc       *time.Location
	now       func() time.Time
	last      map[string]models.EventStatus
}

func NewStatusMonitor(eventRepo *repository.EventRepository, publisher notify.Publisher, interval time.Duration, loc *time.Location, logger *zap.Logger) *StatusMonitor {
	if interval <= 0 {
		interval = StatusPollInterval
	}
	return &StatusMonitor{
		eventRepo: eventRepo,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		loc:       loc,
		now:       time.Now,
		last:      make(map[string]models.EventStatus),
	}
}

// Run ctx iptal edilene kadar çalışır
func (m *StatusMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	if _, err := m.Poll(ctx); err != nil {
		m.logger.Error("status poll failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Poll(ctx); err != nil {
				m.logger.Error("status poll failed", zap.Error(err))
			}
		}
	}
}

// Poll tüm etkinlikleri değerlendirir ve değişenleri yayınlar. İlk görülen
// etkinlik için geçiş yayınlanmaz, sadece kaydedilir.
func (m *StatusMonitor) Poll(ctx context.Context) ([]StatusChange, error) {
	events, err := m.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	var changes []StatusChange
	for i := range events {
		event := &events[i]
		status, err := DeriveStatus(event, now, m.loc)
		if err != nil {
			m.logger.Warn("skipping event with malformed schedule", zap.String("event_id", event.ID), zap.Error(err))
			continue
		}

		previous, seen := m.last[event.ID]
		m.last[event.ID] = status
		if !seen || previous == status {
			continue
		}

		change := StatusChange{EventID: event.ID, Title: event.Title, From: previous, To: status, At: now}
		changes = append(changes, change)
		if err := m.publisher.Publish(ctx, StatusChangedEvent, change); err != nil {
			m.logger.Warn("failed to publish status change", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	return changes, nil
}
