package sessions

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

var _ Provider = (*TokenSourceProvider)(nil)

// TokenSourceProvider reads the token from an oauth2.TokenSource, which owns
// refreshing it. The user snapshot is supplied separately.
type TokenSourceProvider struct {
	source oauth2.TokenSource
	user   *User
	lock   sync.RWMutex
}

func NewTokenSourceProvider(source oauth2.TokenSource, user *User) *TokenSourceProvider {
	return &TokenSourceProvider{source: source, user: user}
}

// SetUser replaces the user snapshot, e.g. after the profile was reloaded.
func (p *TokenSourceProvider) SetUser(user *User) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.user = user
}

func (p *TokenSourceProvider) Current(_ context.Context) (*Session, error) {
	p.lock.RLock()
	user := p.user
	p.lock.RUnlock()

	tok, err := p.source.Token()
	if err != nil {
		return nil, err
	}

	session := &Session{User: user}
	if tok.Valid() {
		session.Token = tok.AccessToken
		session.ExpiresAt = tok.Expiry
	}
	return session, nil
}
