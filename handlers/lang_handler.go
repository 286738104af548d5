package handlers

import (
	"log"
	"net/http"

	"tuneboard/auth"
	"tuneboard/i18n"
)

type LangHandler struct {
	Sessions *auth.SessionManager
	Bundle   *i18n.Bundle
}

// ChangeLang stores the selected language in the session and sends the
// browser back where it came from. Language preference is independent of
// authentication state.
func (h *LangHandler) ChangeLang(w http.ResponseWriter, r *http.Request, lang string) {
	if !h.Bundle.Has(lang) {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}

	session := SessionFrom(r)
	session.Lang = lang
	if err := h.Sessions.Save(session); err != nil {
		log.Printf("saving session language: %v", err)
		http.Error(w, "Error changing language", http.StatusInternalServerError)
		return
	}

	// Cache the choice in a cookie too; negotiation falls back to it for
	// fresh sessions.
	http.SetCookie(w, &http.Cookie{
		Name:   i18n.LangCookie,
		Value:  lang,
		Path:   "/",
		MaxAge: 600,
	})

	referrer := r.Header.Get("Referer")
	if referrer == "" {
		referrer = "/"
	}
	http.Redirect(w, r, referrer, http.StatusFound)
}
