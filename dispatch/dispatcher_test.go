package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/jrsteele09/go-auth-dispatch/dispatch"
	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/jrsteele09/go-auth-dispatch/status"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newStore(token string, user *sessions.User) *sessions.MemoryStore {
	store := sessions.NewMemoryStore()
	store.Set(&sessions.Session{Token: token, User: user})
	return store
}

func statusHeader(value string) http.Header {
	h := http.Header{}
	h.Set(status.HeaderName, value)
	return h
}

var passthrough = dispatch.HandlerFunc(func(_ context.Context, code int, _ http.Header, payload []byte) (any, error) {
	return map[string]any{"status": code, "payload": string(payload)}, nil
})

func TestDispatcher_Headers(t *testing.T) {
	ctx := context.Background()

	t.Run("token present", func(t *testing.T) {
		d := dispatch.New(newStore("abc.def", nil), &recordingNavigator{})
		require.Equal(t, map[string]string{"authorization": "abc.def"}, d.Headers(ctx))
	})

	t.Run("empty token", func(t *testing.T) {
		d := dispatch.New(newStore("", &sessions.User{ID: "u1"}), &recordingNavigator{})
		h := d.Headers(ctx)
		require.NotNil(t, h)
		require.Empty(t, h)
		_, ok := h["authorization"]
		require.False(t, ok)
	})

	t.Run("no session", func(t *testing.T) {
		d := dispatch.New(sessions.NewMemoryStore(), &recordingNavigator{})
		require.Empty(t, d.Headers(ctx))
	})

	t.Run("nil provider", func(t *testing.T) {
		d := dispatch.New(nil, &recordingNavigator{})
		require.Empty(t, d.Headers(ctx))
	})

	t.Run("provider error", func(t *testing.T) {
		failing := sessions.ProviderFunc(func(context.Context) (*sessions.Session, error) {
			return nil, errors.New("store down")
		})
		d := dispatch.New(failing, &recordingNavigator{}, dispatch.WithLogger(zerolog.Nop()))
		require.Empty(t, d.Headers(ctx))
	})

	t.Run("recomputed on token change", func(t *testing.T) {
		store := newStore("first", nil)
		d := dispatch.New(store, &recordingNavigator{})
		require.Equal(t, "first", d.Headers(ctx)["authorization"])

		store.Set(&sessions.Session{Token: "second"})
		require.Equal(t, "second", d.Headers(ctx)["authorization"])

		store.Clear()
		require.Empty(t, d.Headers(ctx))
	})
}

func TestDispatcher_HandleResponse(t *testing.T) {
	ctx := context.Background()
	editor := &sessions.User{ID: "u1", Editor: true, Admin: false}

	tests := []struct {
		name     string
		user     *sessions.User
		headers  http.Header
		navigate bool
	}{
		{"no status header", editor, http.Header{}, false},
		{"nil headers", editor, nil, false},
		{"empty status header", editor, statusHeader(""), false},
		{"matching status", editor, statusHeader(`{"active":true,"editor":true,"admin":false}`), false},
		{"inactive", editor, statusHeader(`{"active":false,"editor":true,"admin":false}`), true},
		{"editor mismatch", editor, statusHeader(`{"active":true,"editor":false,"admin":false}`), true},
		{"admin mismatch", editor, statusHeader(`{"active":true,"editor":true,"admin":true}`), true},
		{"malformed", editor, statusHeader(`not-json{`), false},
		{"missing fields", editor, statusHeader(`{"active":false}`), false},
		{"trailing brace", editor, statusHeader(`{"active":false,"editor":true,"admin":false}}`), false},
		{"trailing bracket", editor, statusHeader(`{"active":false,"editor":true,"admin":false}]`), false},
		{"upper case field names", editor, statusHeader(`{"ACTIVE":false,"Editor":true,"ADMIN":false}`), false},
		{"no user", nil, statusHeader(`{"active":false,"editor":false,"admin":false}`), false},
		{"lower case header key", editor, http.Header{"x-documize-status": {`{"active":false,"editor":true,"admin":false}`}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := &recordingNavigator{}
			d := dispatch.New(newStore("tok", tt.user), nav, dispatch.WithHandler(passthrough), dispatch.WithLogger(zerolog.Nop()))

			result, err := d.HandleResponse(ctx, http.StatusOK, tt.headers, []byte(`{"ok":true}`))
			require.NoError(t, err)
			require.Equal(t, map[string]any{"status": http.StatusOK, "payload": `{"ok":true}`}, result)

			if tt.navigate {
				require.Equal(t, []string{"auth/login"}, nav.Paths())
				require.True(t, d.Invalidated())
			} else {
				require.Empty(t, nav.Paths())
				require.False(t, d.Invalidated())
			}
		})
	}
}

func TestDispatcher_HandleResponsePassesErrorsThrough(t *testing.T) {
	nav := &recordingNavigator{}
	handlerErr := errors.New("boom")
	failing := dispatch.HandlerFunc(func(context.Context, int, http.Header, []byte) (any, error) {
		return "partial", handlerErr
	})
	d := dispatch.New(newStore("tok", &sessions.User{ID: "u1"}), nav, dispatch.WithHandler(failing))

	result, err := d.HandleResponse(context.Background(), http.StatusInternalServerError,
		statusHeader(`{"active":false,"editor":false,"admin":false}`), nil)
	require.Equal(t, "partial", result)
	require.ErrorIs(t, err, handlerErr)
	require.Equal(t, []string{"auth/login"}, nav.Paths())
}

func TestDispatcher_NavigatesOnce(t *testing.T) {
	nav := &recordingNavigator{}
	d := dispatch.New(newStore("tok", &sessions.User{ID: "u1"}), nav,
		dispatch.WithLoginPath("/signin"), dispatch.WithLogger(zerolog.Nop()))

	inactive := statusHeader(`{"active":false,"editor":false,"admin":false}`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, d.Check(context.Background(), inactive))
		}()
	}
	wg.Wait()

	require.Equal(t, []string{"/signin"}, nav.Paths())
	require.True(t, d.Invalidated())
}

func TestDispatcher_NilNavigator(t *testing.T) {
	d := dispatch.New(newStore("tok", &sessions.User{ID: "u1"}), nil,
		dispatch.WithHandler(passthrough), dispatch.WithLogger(zerolog.Nop()))

	inactive := statusHeader(`{"active":false,"editor":false,"admin":false}`)
	require.NotPanics(t, func() {
		_, err := d.HandleResponse(context.Background(), http.StatusOK, inactive, nil)
		require.NoError(t, err)
	})
	require.True(t, d.Invalidated())
}

func TestDispatcher_DefaultHandler(t *testing.T) {
	d := dispatch.New(newStore("tok", nil), &recordingNavigator{})

	result, err := d.HandleResponse(context.Background(), http.StatusOK, nil, []byte(`{"id":"d1"}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": "d1"}, result)

	_, err = d.HandleResponse(context.Background(), http.StatusNotFound, nil, []byte(`{"error":"not found"}`))
	var respErr *dispatch.ResponseError
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, http.StatusNotFound, respErr.Status)
}
