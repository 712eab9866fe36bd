// Package auth validates Basic credentials against the repository's
// user accounts and keeps authenticated sessions in a signed cookie.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/fbrnila/go-dms-dav/domain"
	"github.com/fbrnila/go-dms-dav/uc"
)

// UserSource resolves a login to its account record.
type UserSource interface {
	UserByLogin(login string) (*domain.User, error)
}

type basicAuthenticator struct {
	users UserSource
	creds map[string]string // login -> hex-encoded sha256 of the password
}

func New(users UserSource, creds map[string]string) uc.Authenticator {
	return basicAuthenticator{users: users, creds: creds}
}

// HashPassword returns the credential digest stored for a login.
func HashPassword(pass string) string {
	sum := sha256.Sum256([]byte(pass))
	return hex.EncodeToString(sum[:])
}

func (a basicAuthenticator) Authenticate(login, pass string) (*domain.User, error) {
	want, ok := a.creds[login]
	if !ok {
		return nil, errors.New("unknown login")
	}
	if subtle.ConstantTimeCompare([]byte(HashPassword(pass)), []byte(want)) != 1 {
		return nil, errors.New("wrong password")
	}
	return a.users.UserByLogin(login)
}
