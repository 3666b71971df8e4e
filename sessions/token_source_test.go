package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("refresh failed")
}

func TestTokenSourceProvider(t *testing.T) {
	ctx := context.Background()
	user := &sessions.User{ID: "u1", Admin: true}

	t.Run("valid token", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		p := sessions.NewTokenSourceProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access", Expiry: expiry}), user)
		s, err := p.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "access", s.Token)
		require.Equal(t, expiry, s.ExpiresAt)
		require.Same(t, user, s.User)
	})

	t.Run("expired token omitted", func(t *testing.T) {
		p := sessions.NewTokenSourceProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(-time.Hour)}), user)
		s, err := p.Current(ctx)
		require.NoError(t, err)
		require.False(t, s.HasToken())
		require.NotNil(t, s.User)
	})

	t.Run("source error", func(t *testing.T) {
		p := sessions.NewTokenSourceProvider(failingSource{}, user)
		_, err := p.Current(ctx)
		require.Error(t, err)
	})

	t.Run("set user", func(t *testing.T) {
		p := sessions.NewTokenSourceProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access"}), nil)
		p.SetUser(user)
		s, err := p.Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "u1", s.User.ID)
	})
}
