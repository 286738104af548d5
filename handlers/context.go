package handlers

import (
	"context"
	"net/http"

	"tuneboard/models"
)

type ctxKey int

const sessionKey ctxKey = iota

// WithSession stores the attached session in the request context. The
// routes package calls this once per request, before any gate runs.
func WithSession(r *http.Request, session *models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey, session))
}

// SessionFrom returns the session attached to the request, or nil when
// session attachment did not run (static routes).
func SessionFrom(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionKey).(*models.Session)
	return session
}
