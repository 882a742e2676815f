package service

import (
	"fmt"
	"time"

	"github.com/sefazor/classgather-backend/internal/models"
)

const (
	// CheckInLead check-in başlangıçtan bu kadar önce açılır
	CheckInLead = 30 * time.Minute
	// EndedAfterDays etkinlik tarihinden bu kadar gün sonra, gün sonunda biter
	EndedAfterDays = 2
	// StatusPollInterval durumların yeniden hesaplanma aralığı
	StatusPollInterval = time.Minute
)

// Schedule bir etkinliğin eşik anları. Tarih ve saat, değerlendiren
// istemcinin saat diliminde yorumlanır; normalizasyon yapılmaz.
type Schedule struct {
	StartsAt       time.Time
	CheckInOpensAt time.Time
	EndsAt         time.Time
}

func ScheduleOf(event *models.Event, loc *time.Location) (Schedule, error) {
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation(models.DateLayout, event.Date, loc)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: date %q", ErrInvalidSchedule, event.Date)
	}
	clock, err := time.Parse(models.TimeLayout, event.Time)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: time %q", ErrInvalidSchedule, event.Time)
	}

	y, m, d := day.Date()
	start := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)

	return Schedule{
		StartsAt:       start,
		CheckInOpensAt: start.Add(-CheckInLead),
		// saat kısmı dikkate alınmaz: tarih + 2 gün, 23:59:59.999
		EndsAt: time.Date(y, m, d+EndedAfterDays, 23, 59, 59, int(999*time.Millisecond), loc),
	}, nil
}

// StatusAt ended, check-in-open'ı ezer
func (s Schedule) StatusAt(now time.Time) models.EventStatus {
	switch {
	case now.After(s.EndsAt):
		return models.StatusEnded
	case !now.Before(s.CheckInOpensAt):
		return models.StatusCheckInOpen
	default:
		return models.StatusUpcoming
	}
}

func DeriveStatus(event *models.Event, now time.Time, loc *time.Location) (models.EventStatus, error) {
	schedule, err := ScheduleOf(event, loc)
	if err != nil {
		return "", err
	}
	return schedule.StatusAt(now), nil
}

// CheckInAllowed settlement aşamasında (ended) geç check-in'e izin verir
func CheckInAllowed(status models.EventStatus) bool {
	return status == models.StatusCheckInOpen || status == models.StatusEnded
}

// ResolveLocation istemcinin gönderdiği IANA adını çözer, bilinmiyorsa fallback
func ResolveLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
