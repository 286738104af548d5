package handlers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"tuneboard/i18n"
)

// LoggedUser is the per-request display view of the authenticated user,
// built from the session. There is deliberately no shared mutable
// current-user value anywhere in the process.
type LoggedUser struct {
	Name    string
	IsAuth  bool
	IsAdmin bool
}

type Renderer struct {
	templates *template.Template
	bundle    *i18n.Bundle
}

// NewRenderer parses every page template under dir once at startup.
func NewRenderer(dir string, bundle *i18n.Bundle) (*Renderer, error) {
	funcs := template.FuncMap{
		"T":          bundle.T,
		"formatDate": formatDate,
	}
	templates, err := template.New("").Funcs(funcs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates, bundle: bundle}, nil
}

// HTML renders the named page template. The session-derived language and
// logged-user view are merged into the template data under "Lang" and
// "LoggedUser".
func (re *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}

	lang := re.bundle.Fallback()
	user := LoggedUser{}
	if session := SessionFrom(r); session != nil {
		lang = re.bundle.Negotiate(r, session.Lang)
		user = LoggedUser{
			Name:    session.Name,
			IsAuth:  session.IsAuth,
			IsAdmin: session.IsAuthAdmin,
		}
	}
	data["Lang"] = lang
	data["LoggedUser"] = user

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := re.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		log.Printf("rendering %s: %v", name, err)
	}
}

// ErrorPage renders the shared error template with a code and message.
func (re *Renderer) ErrorPage(w http.ResponseWriter, r *http.Request, code int, msg string) {
	re.HTML(w, r, code, "error", map[string]interface{}{
		"ErrorCode": code,
		"ErrorMsg":  msg,
	})
}

// formatDate renders dates as dd.mm.yyyy for the page templates.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
