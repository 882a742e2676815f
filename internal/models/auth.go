package models

// LoginRequest CaptchaToken sadece Turnstile açıksa ve cihazın ilk girişinde gerekli
type LoginRequest struct {
	Name         string `json:"name" validate:"notblank"`
	Passphrase   string `json:"passphrase"`
	DeviceID     string `json:"deviceId" validate:"required,max=128"`
	CaptchaToken string `json:"captchaToken"`
	RemoteIP     string `json:"-"`
}

// Session isteği yapan kullanıcının kimliği. Kimlik istemcinin beyanıdır,
// sadece arayüz seviyesinde bir konvansiyon olarak kontrol edilir.
type Session struct {
	UserName string `json:"userName"`
	DeviceID string `json:"deviceId"`
}

func (s Session) IsAnonymous() bool {
	return s.UserName == ""
}

type AuthResponse struct {
	Token          string  `json:"token"`
	Session        Session `json:"session"`
	DeviceVerified bool    `json:"deviceVerified"`
}

type DescriptionRequest struct {
	Title    string `json:"title" validate:"notblank"`
	Location string `json:"location" validate:"notblank"`
}
