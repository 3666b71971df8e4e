package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/sessions"
)

// Claims are carried by session tokens. The capability flags reflect the user
// when the token was issued and may go stale; the status header reports the
// current values.
type Claims struct {
	Email     string `json:"email,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Editor    bool   `json:"editor"`
	Admin     bool   `json:"admin"`
	jwt.RegisteredClaims
}

// User builds the client side user snapshot from the claims.
func (c *Claims) User() *sessions.User {
	return &sessions.User{
		ID:        c.Subject,
		Email:     c.Email,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Editor:    c.Editor,
		Admin:     c.Admin,
	}
}

// ParseUnverified decodes a token without checking its signature. Clients use
// it to read their own identity; it must never be used to authorise anything.
func ParseUnverified(rawToken string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "parse unverified: %v", err)
	}
	return claims, nil
}

// SessionFromToken builds a session from a freshly issued token.
func SessionFromToken(rawToken string) (*sessions.Session, error) {
	claims, err := ParseUnverified(rawToken)
	if err != nil {
		return nil, err
	}
	session := &sessions.Session{Token: rawToken, User: claims.User()}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
