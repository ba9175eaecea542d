package models

import "time"

// Notification is ephemeral: it exists only for the duration of one
// real-time delivery attempt and is dropped if the target is offline.
type Notification struct {
	Type        string      `json:"type"` // "like", "dislike" or "message"
	UserID      string      `json:"userId"`
	UserDetails UserSummary `json:"userDetails"`
	PostID      string      `json:"postId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Message     string      `json:"message"`
}
