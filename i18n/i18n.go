package i18n

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// LangCookie is the cookie consulted last during language negotiation.
const LangCookie = "lang"

// Bundle holds the flat key→string locale resources, preloaded at startup.
type Bundle struct {
	fallback string
	locales  map[string]map[string]string
}

// Load reads <dir>/<lang>.json for every requested language. Each file is
// a single flat JSON object of message keys to translated strings.
func Load(dir string, langs []string, fallback string) (*Bundle, error) {
	b := &Bundle{
		fallback: fallback,
		locales:  make(map[string]map[string]string, len(langs)),
	}

	for _, lang := range langs {
		path := filepath.Join(dir, lang+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading locale %q: %w", lang, err)
		}
		messages := make(map[string]string)
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parsing locale %q: %w", lang, err)
		}
		b.locales[lang] = messages
	}

	if _, ok := b.locales[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q not loaded", fallback)
	}
	return b, nil
}

// Fallback returns the default language of the bundle.
func (b *Bundle) Fallback() string {
	return b.fallback
}

// Has reports whether lang was preloaded.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.locales[lang]
	return ok
}

// T resolves key in lang, falling back to the default language and finally
// to the key itself, so a missing message is visible rather than blank.
func (b *Bundle) T(lang, key string) string {
	if messages, ok := b.locales[lang]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := b.locales[b.fallback][key]; ok {
		return msg
	}
	return key
}

// Negotiate picks the request language: session value first, then the
// "lang" query parameter, then the "lang" cookie. Unknown languages fall
// through to the next source.
func (b *Bundle) Negotiate(r *http.Request, sessionLang string) string {
	if b.Has(sessionLang) {
		return sessionLang
	}
	if q := r.URL.Query().Get("lang"); b.Has(q) {
		return q
	}
	if c, err := r.Cookie(LangCookie); err == nil && b.Has(c.Value) {
		return c.Value
	}
	return b.fallback
}

// Func returns a translation closure bound to lang, handy for templates.
func (b *Bundle) Func(lang string) func(string) string {
	return func(key string) string {
		return b.T(lang, key)
	}
}
