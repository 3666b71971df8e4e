package config

import "time"

type TokenConfig interface {
	GetJWTSecret() []byte
	GetJWTIssuer() string
	GetTokenExpiry() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetJWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "dev-secret-change-me"))
}

func (Token) GetJWTIssuer() string {
	return GetEnv("JWT_ISSUER", "go-auth-dispatch")
}

func (Token) GetTokenExpiry() time.Duration {
	return GetDuration("TOKEN_EXPIRY", 7*24*time.Hour)
}
