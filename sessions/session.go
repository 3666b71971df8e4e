package sessions

import (
	"context"
	"time"
)

// User is the client's read-only snapshot of the authenticated user.
// Only Editor and Admin take part in the stale session check.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Editor    bool   `json:"editor"`
	Admin     bool   `json:"admin"`
}

// Session is what a client knows about its current login.
// Sessions are replaced as a whole, never mutated in place.
type Session struct {
	Token     string    `json:"token,omitempty"` // Opaque credential sent as the authorization header
	User      *User     `json:"user,omitempty"`  // Nil until the user record is known
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// HasToken reports whether the session carries a non-empty token.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// AuthenticatedUser returns the user snapshot, nil when there is no session or no user.
func (s *Session) AuthenticatedUser() *User {
	if s == nil {
		return nil
	}
	return s.User
}

// Provider exposes the session owned by someone else.
// A nil session with a nil error means nobody is logged in.
type Provider interface {
	Current(ctx context.Context) (*Session, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (*Session, error)

func (f ProviderFunc) Current(ctx context.Context) (*Session, error) {
	return f(ctx)
}
