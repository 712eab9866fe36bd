package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const sessionCookie = "DMSSession"

// Sessions caches authenticated logins in a signed cookie so clients
// issuing many requests per operation skip credential checks after the
// first one. Keys are regenerated on startup; sessions never outlive
// the process.
type Sessions struct {
	cookie *securecookie.SecureCookie
	age    int64
}

func NewSessions(ageHours int64) *Sessions {
	return &Sessions{
		cookie: securecookie.New(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
		age:    ageHours,
	}
}

func (s *Sessions) SetSessionCookie(w http.ResponseWriter, login string) error {
	encoded, err := s.cookie.Encode(sessionCookie, map[string]string{"user": login})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Expires:  time.Now().Add(time.Duration(s.age) * time.Hour),
		Name:     sessionCookie,
		Path:     "/",
		Value:    encoded,
		HttpOnly: true,
	})

	return nil
}

// LoginFromRequest returns the login cached in the request's session
// cookie, or "" when no valid session is present.
func (s *Sessions) LoginFromRequest(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}

	values := map[string]string{}
	if err := s.cookie.Decode(sessionCookie, c.Value, &values); err != nil {
		return ""
	}
	return values["user"]
}

func (s *Sessions) DelSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "deleted",
		Path:   "/",
		MaxAge: -1,
	})
}
