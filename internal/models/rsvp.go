package models

import "time"

type RSVPStatus string

// Paid hiçbir işlem tarafından atanmıyor, sadece alan olarak korunuyor
const (
	RSVPStatusPending RSVPStatus = "pending"
	RSVPStatusPaid    RSVPStatus = "paid"
)

type RSVP struct {
	ID          string     `json:"id"`
	EventID     string     `json:"eventId"`
	UserName    string     `json:"userName"`
	Contact     string     `json:"contact"`
	Status      RSVPStatus `json:"status"`
	CheckInTime *int64     `json:"checkInTime,omitempty"`
	Timestamp   int64      `json:"timestamp"`
}

func (r *RSVP) CheckedIn() bool {
	return r.CheckInTime != nil
}

func (r *RSVP) CheckedInAt() time.Time {
	if r.CheckInTime == nil {
		return time.Time{}
	}
	return time.UnixMilli(*r.CheckInTime)
}

// AttendanceState bir (event, user) çiftinin durumu
type AttendanceState string

const (
	AttendanceNotRegistered AttendanceState = "not-registered"
	AttendanceRegistered    AttendanceState = "registered"
	AttendanceCheckedIn     AttendanceState = "checked-in"
)

type JoinRequest struct {
	Contact string `json:"contact" validate:"notblank"`
}

type CancelRequest struct {
	Confirm bool `json:"confirm"`
}

// PaymentInfo check-in sonrası kullanıcıya gösterilen ödeme bilgisi
type PaymentInfo struct {
	Cost          float64 `json:"cost"`
	PaymentQRCode string  `json:"paymentQRCode,omitempty"`
}

type CheckInResponse struct {
	RSVP    RSVP        `json:"rsvp"`
	Payment PaymentInfo `json:"payment"`
}

type AttendanceSummary struct {
	EventID    string          `json:"eventId"`
	Status     EventStatus     `json:"status"`
	State      AttendanceState `json:"state"`
	Mine       *RSVP           `json:"mine,omitempty"`
	CanJoin    bool            `json:"canJoin"`
	CanCancel  bool            `json:"canCancel"`
	CanCheckIn bool            `json:"canCheckIn"`
	Roster     []RSVP          `json:"roster"`
	Headcount  int             `json:"headcount"`
	CheckedIn  int             `json:"checkedIn"`
}
