package models

type Comment struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	UserName  string `json:"userName"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"notblank"`
}
