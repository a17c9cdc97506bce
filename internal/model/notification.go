package model

import "time"

// Notification represents a row in the notifications table.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNotificationRequest represents a notification creation request.
// UserID is a pointer so a missing field is distinguishable from user 0.
type CreateNotificationRequest struct {
	UserID  *int64 `json:"userId"`
	Message string `json:"message"`
}
