package models

import "time"

// Session is the server-side session record persisted in the sessions
// collection. The client only ever holds the opaque ID in a cookie.
type Session struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	IsAuth      bool      `json:"is_auth" bson:"is_auth" db:"is_auth"`
	IsAuthAdmin bool      `json:"is_auth_admin" bson:"is_auth_admin" db:"is_auth_admin"`
	Name        string    `json:"name" bson:"name" db:"name"`
	Lang        string    `json:"lang" bson:"lang" db:"lang"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at" db:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
