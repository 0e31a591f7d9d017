package delivery

import (
	"net/http"

	"github.com/Vovarama1992/voice_translator/internal/ai"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "session_id"
)

type SessionStore interface {
	New() string
	Lock(id string) (unlock func())
	Get(id string) ai.History
	Put(id string, h ai.History)
	Reset(id string)
}

// existingSessionID reads the id from the header, then the cookie. Non-UUID values are ignored.
func existingSessionID(r *http.Request) string {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func sessionID(w http.ResponseWriter, r *http.Request, store SessionStore) string {
	id := existingSessionID(r)
	if id == "" {
		id = store.New()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set(sessionHeader, id)
	return id
}
