package sessions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/redis/go-redis/v9"
)

// defaultTTL applies to sessions saved without an expiry.
const defaultTTL = 24 * time.Hour

var NowTimeFunc = time.Now

// RedisStore keeps sessions in Redis so several client processes can share a login.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (rs *RedisStore) key(sessionID string) string {
	return rs.prefix + ":" + sessionID
}

// Save writes the session, expiring it with the session itself.
func (rs *RedisStore) Save(ctx context.Context, sessionID string, session *Session) error {
	if sessionID == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "sessionID is required")
	}
	if session == nil {
		return rs.Delete(ctx, sessionID)
	}

	ttl := defaultTTL
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(NowTimeFunc())
		// Redis expiries have millisecond resolution.
		if ttl < time.Millisecond {
			return rs.Delete(ctx, sessionID)
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "[RedisStore Save] marshal session %s", sessionID)
	}
	if err := rs.rdb.Set(ctx, rs.key(sessionID), data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "[RedisStore Save] set session %s", sessionID)
	}
	return nil
}

// Get loads a session. ErrSessionNotFound is returned when the key is absent.
func (rs *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := rs.rdb.Get(ctx, rs.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[RedisStore Get] session %s", sessionID)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(errors.ErrSessionCorrupt, "[RedisStore Get] session %s: %v", sessionID, err)
	}
	return &session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (rs *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := rs.rdb.Del(ctx, rs.key(sessionID)).Err(); err != nil {
		return errors.Wrapf(err, "[RedisStore Delete] session %s", sessionID)
	}
	return nil
}

// Provider binds the store to one session ID.
func (rs *RedisStore) Provider(sessionID string) Provider {
	return ProviderFunc(func(ctx context.Context) (*Session, error) {
		session, err := rs.Get(ctx, sessionID)
		if errors.Is(err, errors.ErrSessionNotFound) {
			return nil, nil
		}
		return session, err
	})
}
