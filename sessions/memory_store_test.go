package sessions_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore()

	t.Run("empty", func(t *testing.T) {
		s, err := store.Current(ctx)
		require.NoError(t, err)
		require.Nil(t, s)
		require.False(t, s.HasToken())
		require.Nil(t, s.AuthenticatedUser())
	})

	t.Run("set and clear", func(t *testing.T) {
		store.Set(&sessions.Session{Token: "abc", User: &sessions.User{ID: "u1", Editor: true}})
		s, err := store.Current(ctx)
		require.NoError(t, err)
		require.True(t, s.HasToken())
		require.True(t, s.AuthenticatedUser().Editor)

		store.Clear()
		s, err = store.Current(ctx)
		require.NoError(t, err)
		require.Nil(t, s)
	})

	t.Run("session without token", func(t *testing.T) {
		store.Set(&sessions.Session{User: &sessions.User{ID: "u1"}})
		s, err := store.Current(ctx)
		require.NoError(t, err)
		require.False(t, s.HasToken())
		require.NotNil(t, s.AuthenticatedUser())
	})
}
