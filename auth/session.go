package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"tuneboard/models"
	"tuneboard/repository"
)

const (
	// CookieName is the cookie carrying the opaque session id.
	CookieName = "session_id"

	// DefaultLang is the fallback interface language for new sessions.
	DefaultLang = "en"

	// SessionLifetime bounds how long an idle session survives in the store.
	SessionLifetime = 7 * 24 * time.Hour
)

// SessionManager attaches a persisted session to each request. All state
// lives in the session store; the browser only ever sees the id.
type SessionManager struct {
	Repo repository.SessionRepository
}

func NewSessionManager(repo repository.SessionRepository) *SessionManager {
	return &SessionManager{Repo: repo}
}

// Attach loads the session referenced by the request cookie, creating a
// fresh anonymous session when there is none (or the stored one expired).
func (sm *SessionManager) Attach(w http.ResponseWriter, r *http.Request) (*models.Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		session, err := sm.Repo.GetSession(cookie.Value)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
	}

	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:        id,
		Lang:      DefaultLang,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionLifetime),
	}
	if err := sm.Repo.SaveSession(session); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(SessionLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return session, nil
}

// Save persists any handler-side mutations of the session record.
func (sm *SessionManager) Save(session *models.Session) error {
	return sm.Repo.SaveSession(session)
}

// Login moves the session into the authenticated state. The admin flag is
// captured from the user record at login time and re-verified against the
// store on each admin route.
func (sm *SessionManager) Login(session *models.Session, user *models.User) error {
	session.IsAuth = true
	session.IsAuthAdmin = user.IsAdmin
	session.Name = user.Name
	return sm.Repo.SaveSession(session)
}

// Destroy removes the session record and expires the client cookie.
// The terminal state: a destroyed id never authenticates again.
func (sm *SessionManager) Destroy(w http.ResponseWriter, session *models.Session) error {
	if err := sm.Repo.DeleteSession(session.ID); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return nil
}

func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
