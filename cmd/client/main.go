package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-auth-dispatch/dispatch"
	"github.com/jrsteele09/go-auth-dispatch/internal/config"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/sessions"
	"github.com/jrsteele09/go-auth-dispatch/token"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionKeyPrefix = "auth-dispatch:session"

// Polls the current user through a dispatcher until the server reports a
// changed status, then exits as a browser would redirect to the login page.
func main() {
	c := config.New()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	displayAppname(c.GetAppName() + " client")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		log.Fatal().Err(err).Msg("Client failed")
	}
}

func run(ctx context.Context, c config.Config) error {
	provider, err := sessionProvider(ctx, c)
	if err != nil {
		return err
	}

	loggedOut := make(chan string, 1)
	navigator := dispatch.NavigatorFunc(func(path string) {
		loggedOut <- path
	})

	d := dispatch.New(provider, navigator, dispatch.WithLoginPath(c.GetLoginPath()), dispatch.WithLogger(log.Logger))
	client := dispatch.NewClient(c.GetAPIHost(), c.GetAPINamespace(), d)

	interval := config.GetDuration("POLL_INTERVAL", 5*time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		me, err := client.Get(ctx, "users/me")
		if err != nil {
			log.Warn().Err(err).Msg("users/me failed")
		} else {
			printJSON(me)
		}

		select {
		case path := <-loggedOut:
			log.Info().Str("path", path).Msg("Session invalidated, login required")
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// sessionProvider signs in through OIDC when OIDC_ISSUER is set, reads the
// session from Redis when SESSION_ID is set and otherwise logs in with
// CLIENT_EMAIL and CLIENT_PASSWORD.
func sessionProvider(ctx context.Context, c config.Config) (sessions.Provider, error) {
	if issuer := c.GetOIDCIssuer(); issuer != "" {
		provider, err := sessions.NewOIDCTokenProvider(ctx, sessions.OIDCConfig{
			Issuer:       issuer,
			ClientID:     c.GetOIDCClientID(),
			ClientSecret: c.GetOIDCClientSecret(),
			RefreshToken: c.GetOIDCRefreshToken(),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("issuer", issuer).Msg("Signed in with OpenID Connect")
		return provider, nil
	}

	var store *sessions.RedisStore
	if addr := c.GetRedisAddr(); addr != "" {
		store = sessions.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), sessionKeyPrefix)
	}

	sessionID := c.GetSessionID()
	if store != nil && sessionID != "" {
		if _, err := store.Get(ctx, sessionID); err == nil {
			log.Info().Str("session_id", sessionID).Msg("Using stored session")
			return store.Provider(sessionID), nil
		} else if !errors.Is(err, errors.ErrSessionNotFound) {
			return nil, errors.Wrapf(err, "loading session %s", sessionID)
		}
	}

	session, err := login(ctx, c)
	if err != nil {
		return nil, err
	}

	if store != nil && sessionID != "" {
		if err := store.Save(ctx, sessionID, session); err != nil {
			return nil, errors.Wrapf(err, "saving session %s", sessionID)
		}
		return store.Provider(sessionID), nil
	}

	memory := sessions.NewMemoryStore()
	memory.Set(session)
	return memory, nil
}

func login(ctx context.Context, c config.Config) (*sessions.Session, error) {
	email := config.GetEnv("CLIENT_EMAIL", c.GetAdminEmail())
	password := config.GetEnv("CLIENT_PASSWORD", "")
	if password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidCredentials, "CLIENT_PASSWORD is not set")
	}

	// No session yet, so the dispatcher adds no headers and never navigates.
	anonymous := dispatch.New(sessions.NewMemoryStore(), dispatch.NavigatorFunc(func(string) {}))
	client := dispatch.NewClient(c.GetAPIHost(), c.GetAPINamespace(), anonymous)

	result, err := client.Post(ctx, "public/authenticate", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, errors.Wrapf(err, "authenticating %s", email)
	}

	body, _ := result.(map[string]any)
	raw, _ := body["token"].(string)
	session, err := token.SessionFromToken(raw)
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", email).Time("expires_at", session.ExpiresAt).Msg("Logged in")
	return session, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Err(err).Msg("Unable to format response")
		return
	}
	fmt.Println(string(out))
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
