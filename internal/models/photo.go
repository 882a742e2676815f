package models

type Photo struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	UserName  string `json:"userName"`
	URL       string `json:"url"` // data URL ya da R2 public URL
	Timestamp int64  `json:"timestamp"`
}
