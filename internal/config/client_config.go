package config

import "strings"

type ClientConfig interface {
	GetAPIHost() string
	GetAPINamespace() string
	GetLoginPath() string
	GetSessionID() string
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
	GetOIDCRefreshToken() string
}

type Client struct{}

var _ ClientConfig = Client{}

// GetAPIHost returns the scheme and host of the API, e.g. "http://localhost:5001".
func (Client) GetAPIHost() string {
	return strings.TrimRight(GetEnv("API_HOST", "http://localhost:5001"), "/")
}

// GetAPINamespace returns the path prefix prepended to every API request.
func (Client) GetAPINamespace() string {
	return strings.Trim(GetEnv("API_NAMESPACE", "api"), "/")
}

func (Client) GetLoginPath() string {
	return GetEnv("LOGIN_PATH", "auth/login")
}

// GetSessionID names the Redis session a client command reads its token from.
func (Client) GetSessionID() string {
	return GetEnv("SESSION_ID", "")
}

// GetOIDCIssuer enables OpenID Connect login when set, e.g. "https://accounts.example.com".
func (Client) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (Client) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (Client) GetOIDCClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

// GetOIDCRefreshToken is the long lived token the client redeems for access and ID tokens.
func (Client) GetOIDCRefreshToken() string {
	return GetEnv("OIDC_REFRESH_TOKEN", "")
}
