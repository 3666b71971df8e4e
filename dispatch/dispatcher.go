package dispatch

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/jrsteele09/go-auth-dispatch/status"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AuthorizationHeader carries the raw session token.
const AuthorizationHeader = "authorization"

// Dispatcher attaches the session token to requests and forces
// re-authentication when a response reports a changed account.
type Dispatcher struct {
	session     sessions.Provider
	navigator   Navigator
	next        Handler
	loginPath   string
	logger      zerolog.Logger
	invalidated atomic.Bool
}

type Option func(*Dispatcher)

// WithLoginPath overrides DefaultLoginPath.
func WithLoginPath(path string) Option {
	return func(d *Dispatcher) {
		if path != "" {
			d.loginPath = path
		}
	}
}

// WithHandler sets the wrapped response handler. JSONHandler is used otherwise.
func WithHandler(h Handler) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.next = h
		}
	}
}

// WithLogger sets the logger. The global zerolog logger is used otherwise.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New builds a dispatcher over the session provider. A nil navigator is
// replaced by one that only logs, so invalidation never panics.
func New(session sessions.Provider, navigator Navigator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:   session,
		navigator: navigator,
		next:      JSONHandler{},
		loginPath: DefaultLoginPath,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.navigator == nil {
		d.navigator = NavigatorFunc(func(path string) {
			d.logger.Warn().Str("path", path).Msg("No navigator configured, re-authentication not triggered")
		})
	}
	return d
}

// Headers returns the headers for a request about to be sent: the session
// token under "authorization", or nothing at all when there is no token.
func (d *Dispatcher) Headers(ctx context.Context) map[string]string {
	headers := map[string]string{}
	if s := d.current(ctx); s.HasToken() {
		headers[AuthorizationHeader] = s.Token
	}
	return headers
}

// HandleResponse checks the status header and then hands the response to the
// wrapped handler, returning whatever it returns.
func (d *Dispatcher) HandleResponse(ctx context.Context, statusCode int, headers http.Header, payload []byte) (any, error) {
	d.Check(ctx, headers)
	return d.next.HandleResponse(ctx, statusCode, headers, payload)
}

// Check compares the response's status signal with the session user and
// navigates to the login path on a mismatch. It reports whether the
// response invalidated the session.
func (d *Dispatcher) Check(ctx context.Context, headers http.Header) bool {
	user := d.current(ctx).AuthenticatedUser()
	if user == nil {
		return false
	}

	signal, ok := status.Lookup(headers)
	if !ok {
		if v := headerValue(headers); v != "" {
			d.logger.Debug().Str("value", v).Msg("Ignoring malformed status header")
		}
		return false
	}

	if !signal.Invalidates(user.Editor, user.Admin) {
		return false
	}

	d.invalidate(user, signal)
	return true
}

// Invalidated reports whether re-authentication has been forced.
func (d *Dispatcher) Invalidated() bool {
	return d.invalidated.Load()
}

func (d *Dispatcher) invalidate(user *sessions.User, signal status.Signal) {
	if !d.invalidated.CompareAndSwap(false, true) {
		d.logger.Debug().Str("user_id", user.ID).Msg("Session already invalidated")
		return
	}

	d.logger.Info().
		Str("user_id", user.ID).
		Bool("active", signal.Active).
		Bool("editor", signal.Editor).
		Bool("admin", signal.Admin).
		Str("path", d.loginPath).
		Msg("Account status changed, forcing re-authentication")
	d.navigator.Navigate(d.loginPath)
}

// current never fails: a provider error is logged and treated as no session.
func (d *Dispatcher) current(ctx context.Context) *sessions.Session {
	if d.session == nil {
		return nil
	}
	s, err := d.session.Current(ctx)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to read session")
		return nil
	}
	return s
}

func headerValue(headers http.Header) string {
	if headers == nil {
		return ""
	}
	return headers.Get(status.HeaderName)
}
