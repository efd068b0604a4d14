package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mind-engage/gpa-form/internal/gpa"
	"github.com/mind-engage/gpa-form/internal/session"
)

const sessionCookie = "gpa_session"

// Sessions ties the in-memory form store to the signed session cookie.
type Sessions struct {
	Store  *session.Store
	Tokens *session.Tokens
	Secure bool // set the Secure flag on the cookie
}

// open resolves the caller's session, issuing a new cookie when the
// presented one is missing, forged or points at an expired session.
func (s Sessions) open(w http.ResponseWriter, r *http.Request) (string, gpa.State, error) {
	var presented string
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := s.Tokens.Parse(c.Value); err == nil {
			presented = id
		} else {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding session cookie")
		}
	}

	id, st := s.Store.Open(presented)
	if id == presented {
		return id, st, nil
	}
	tok, err := s.Tokens.Issue(id)
	if err != nil {
		return "", gpa.State{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, st, nil
}
