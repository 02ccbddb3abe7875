package session

import "time"

// Session is the server-side record behind a session cookie. The user
// identity carried here is the only identity source the relationship
// services trust.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
