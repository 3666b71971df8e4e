package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jrsteele09/go-auth-dispatch/internal/config"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/users"
	"github.com/rs/zerolog/log"
)

// InitialiseSystem makes sure an active admin exists so the API is usable on first start.
func (s *Server) InitialiseSystem(ctx context.Context, config config.Config) error {
	email := users.NormalizeEmail(config.GetAdminEmail())

	generatedPassword, err := s.createAdmin(ctx, email, config.GetAdminPassword())
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap admin: %w", err)
	}

	switch {
	case generatedPassword == "":
	case config.GetAdminPassword() != "":
		log.Info().Str("email", email).Msg("Admin user created with configured password")
	default:
		log.Info().Str("email", email).Str("password", generatedPassword).Msg("Admin user created")
	}
	return nil
}

// createAdmin returns the password it set, or "" when the admin already existed.
func (s *Server) createAdmin(_ context.Context, email, defaultPassword string) (generatedPassword string, err error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return "", nil
	} else if !errors.Is(err, errors.ErrUserNotFound) {
		return "", err
	}

	generatedPassword = defaultPassword
	if generatedPassword == "" {
		// Generate a secure random password
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[server createAdmin] failed to generate password: %w", err)
		}
		generatedPassword = base64.URLEncoding.EncodeToString(passwordBytes)
	}

	passwordHash, err := users.HashPassword(generatedPassword)
	if err != nil {
		return "", fmt.Errorf("[server createAdmin] failed to hash password: %w", err)
	}

	admin := &users.User{
		Email:        email,
		Firstname:    "Admin",
		PasswordHash: passwordHash,
		DateJoined:   time.Now(),
		Active:       true,
		Editor:       true,
		Admin:        true,
	}
	if err := s.users.Upsert(admin); err != nil {
		return "", fmt.Errorf("[server createAdmin] failed to store admin: %w", err)
	}
	return generatedPassword, nil
}
