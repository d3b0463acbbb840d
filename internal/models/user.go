package models

import "time"

// User represents a player account. Balance accumulates settled prizes.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Name          string
	OAuthProvider string
	OAuthSubject  string
	Balance       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session represents an authenticated session.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
