package service

import "errors"

// Doğrulama hataları: mutasyon yapılmadan kullanıcıya döner
var (
	ErrNameRequired         = errors.New("please enter your name")
	ErrWrongPassphrase      = errors.New("the class passphrase is incorrect")
	ErrCaptchaFailed        = errors.New("human verification failed, please try again")
	ErrTitleRequired        = errors.New("title, date and location are required")
	ErrInvalidSchedule      = errors.New("event date or time is malformed")
	ErrInvalidCost          = errors.New("cost must be a non-negative number")
	ErrContentRequired      = errors.New("comment must not be empty")
	ErrPaymentCodeRequired  = errors.New("a payment image or link is required")
	ErrConfirmationRequired = errors.New("cancelling a registration must be confirmed")
)

// Durum hataları: işlem etkinliğin ya da kaydın mevcut durumunda geçersiz
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventEnded       = errors.New("event has ended")
	ErrNotRegistered    = errors.New("you are not registered for this event")
	ErrAlreadyCheckedIn = errors.New("you have already checked in")
	ErrCheckInClosed    = errors.New("check-in opens 30 minutes before the event starts")
)

// Yetki hataları. Kimlik istemcinin beyanı olduğu için bunlar bir güvenlik
// sınırı değil, arayüz konvansiyonu.
var (
	ErrLoginRequired = errors.New("login required")
	ErrNotOrganizer  = errors.New("only the organizer can change this event")
	ErrInvalidToken  = errors.New("session is invalid or has been logged out")
)
