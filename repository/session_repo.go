package repository

import "tuneboard/models"

// SessionRepository persists server-side sessions. GetSession returns
// (nil, nil) for a missing or expired session.
type SessionRepository interface {
	GetSession(id string) (*models.Session, error)
	SaveSession(session *models.Session) error
	DeleteSession(id string) error
}
