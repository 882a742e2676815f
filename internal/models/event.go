package models

import "time"

// EventStatus etkinliğin zamana bağlı türetilmiş durumu
type EventStatus string

const (
	StatusUpcoming    EventStatus = "upcoming"
	StatusCheckInOpen EventStatus = "check-in-open"
	StatusEnded       EventStatus = "ended"
)

// Tarih ve saat formatları (yerel saat, timezone bilgisi yok)
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Event struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Time          string  `json:"time"` // HH:mm
	Location      string  `json:"location"`
	Cost          float64 `json:"cost"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"coverImage"`
	Organizer     string  `json:"organizer"`
	PaymentQRCode string  `json:"paymentQRCode,omitempty"`
	Timestamp     int64   `json:"timestamp"`
}

func (e *Event) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

type EventRequest struct {
	Title         string  `json:"title" validate:"notblank"`
	Date          string  `json:"date" validate:"calendar_date"`
	Time          string  `json:"time" validate:"omitempty,clock_time"`
	Location      string  `json:"location" validate:"notblank"`
	Cost          float64 `json:"cost" validate:"gte=0"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"coverImage"`
	PaymentQRCode string  `json:"paymentQRCode"`
}

type UpdateCostRequest struct {
	Cost *float64 `json:"cost" validate:"required,gte=0"`
}

// PaymentCodeRequest organizatör ya hazır bir görsel (data URL / URL) ya da
// QR koda çevrilecek bir ödeme linki gönderir
type PaymentCodeRequest struct {
	Image string `json:"image" validate:"required_without=Link"`
	Link  string `json:"link" validate:"required_without=Image,omitempty,url"`
}

// EventResponse detay ekranı için, paymentQRCode yetkisiz kullanıcıdan gizlenir
type EventResponse struct {
	Event
	Status      EventStatus `json:"status"`
	IsOrganizer bool        `json:"isOrganizer"`
	StartsAt    time.Time   `json:"startsAt"`
	CheckInAt   time.Time   `json:"checkInOpensAt"`
	EndsAt      time.Time   `json:"endedAfter"`
	PhotoCount  int         `json:"photoCount"`
}

type EventListItem struct {
	Event
	Status EventStatus `json:"status"`
}

type ListEventsQuery struct {
	Search string `query:"search"`
	Sort   string `query:"sort" validate:"omitempty,oneof=date cost"`
}
