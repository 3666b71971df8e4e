package sessions

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"golang.org/x/oauth2"
)

// OIDCConfig names an OpenID provider and the refresh token a client holds for it.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// NewOIDCTokenProvider discovers the issuer, redeems the refresh token and
// verifies the ID token returned with it. The provider keeps refreshing the
// access token through x/oauth2; the user snapshot is fixed at login.
func NewOIDCTokenProvider(ctx context.Context, cfg OIDCConfig) (*TokenSourceProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "[OIDC] discover %s", cfg.Issuer)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	source := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	tok, err := source.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "[OIDC] refresh token")
	}
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.Wrapf(errors.ErrMissingToken, "[OIDC] no id_token in token response")
	}

	user, err := UserFromIDToken(ctx, provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), rawIDToken)
	if err != nil {
		return nil, err
	}
	return NewTokenSourceProvider(source, user), nil
}

// idTokenClaims are the identity and capability claims read from an ID token.
type idTokenClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Editor     bool   `json:"editor"`
	Admin      bool   `json:"admin"`
}

// UserFromIDToken verifies an OIDC ID token and builds the user snapshot from its claims.
func UserFromIDToken(ctx context.Context, verifier *oidc.IDTokenVerifier, rawIDToken string) (*User, error) {
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("ID token verification failed: %w", err)
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to extract claims: %w", err)
	}

	return &User{
		ID:        claims.Sub,
		Email:     claims.Email,
		Firstname: claims.GivenName,
		Lastname:  claims.FamilyName,
		Editor:    claims.Editor,
		Admin:     claims.Admin,
	}, nil
}
