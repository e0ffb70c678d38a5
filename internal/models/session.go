package models

import "time"

// Session is a server-side login session. Tokens carry the session ID, so
// deleting the row revokes the token regardless of its JWT expiry.
type Session struct {
	ID        string    `json:"session_id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
