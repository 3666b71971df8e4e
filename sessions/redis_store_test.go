package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	store := sessions.NewRedisStore(rdb, "test")

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)

		s, err := store.Provider("nope").Current(ctx)
		require.NoError(t, err)
		require.Nil(t, s)
	})

	t.Run("save and load", func(t *testing.T) {
		in := &sessions.Session{
			Token:     "tok-1",
			User:      &sessions.User{ID: "u1", Email: "a@b.com", Editor: true},
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, store.Save(ctx, "s1", in))
		require.True(t, mr.Exists("test:s1"))

		out, err := store.Provider("s1").Current(ctx)
		require.NoError(t, err)
		require.Equal(t, "tok-1", out.Token)
		require.Equal(t, "a@b.com", out.User.Email)
		require.True(t, out.User.Editor)
		require.False(t, out.User.Admin)
	})

	t.Run("ttl follows expiry", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s2", &sessions.Session{Token: "t", ExpiresAt: time.Now().Add(time.Minute)}))
		ttl := mr.TTL("test:s2")
		require.Greater(t, ttl, time.Duration(0))
		require.LessOrEqual(t, ttl, time.Minute)

		mr.FastForward(2 * time.Minute)
		_, err := store.Get(ctx, "s2")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("expired session is not stored", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s3", &sessions.Session{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)}))
		require.False(t, mr.Exists("test:s3"))
	})

	t.Run("expiry under a millisecond is not stored", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour)
		sessions.NowTimeFunc = func() time.Time { return expiresAt.Add(-500 * time.Microsecond) }
		t.Cleanup(func() { sessions.NowTimeFunc = time.Now })

		require.NoError(t, store.Save(ctx, "s5", &sessions.Session{Token: "t"}))
		require.NoError(t, store.Save(ctx, "s5", &sessions.Session{Token: "t", ExpiresAt: expiresAt}))
		require.False(t, mr.Exists("test:s5"))
	})

	t.Run("nil session deletes", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s4", &sessions.Session{Token: "t"}))
		require.NoError(t, store.Save(ctx, "s4", nil))
		require.False(t, mr.Exists("test:s4"))
	})

	t.Run("corrupt payload", func(t *testing.T) {
		require.NoError(t, mr.Set("test:bad", "{not json"))
		_, err := store.Get(ctx, "bad")
		require.ErrorIs(t, err, errors.ErrSessionCorrupt)
	})

	t.Run("empty session id", func(t *testing.T) {
		err := store.Save(ctx, "", &sessions.Session{Token: "t"})
		require.ErrorIs(t, err, errors.ErrInvalidRequest)
	})
}
