// Package auth holds the signed-in viewer and persists it in the system keyring.
package auth

import (
	"errors"
	"time"

	"github.com/clipwave/clipwave/constant"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("not signed in")

// Session is what the backend hands back on login. It is passed explicitly
// to everything that talks to authenticated endpoints.
type Session struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authenticated reports whether the session carries both a token and a viewer id.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.ID != ""
}

// IsCreator reports whether the viewer may upload videos.
func (s Session) IsCreator() bool {
	return s.Role == constant.RoleCreator
}

// ExpiresAt reads the exp claim without verifying the signature. The
// backend is the authority, this only lets the client fail early.
func (s Session) ExpiresAt() (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
// Opaque tokens never expire client-side.
func (s Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

// Valid combines Authenticated and Expired against the current time.
func (s Session) Valid() bool {
	return s.Authenticated() && !s.Expired(time.Now())
}
