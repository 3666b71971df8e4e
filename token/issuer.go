package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-dispatch/internal/config"
	"github.com/jrsteele09/go-auth-dispatch/internal/errors"
	"github.com/jrsteele09/go-auth-dispatch/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Issuer creates and verifies session tokens.
type Issuer struct {
	signer Signer
	issuer string
	expiry time.Duration
}

func NewIssuer(signer Signer, issuer string, expiry time.Duration) *Issuer {
	return &Issuer{signer: signer, issuer: issuer, expiry: expiry}
}

// NewIssuerFromConfig builds an HS256 issuer from the token configuration.
func NewIssuerFromConfig(cfg config.TokenConfig) *Issuer {
	return NewIssuer(NewHMACSigner(cfg.GetJWTSecret()), cfg.GetJWTIssuer(), cfg.GetTokenExpiry())
}

// Issue signs a token for the user and returns it with its expiry.
func (i *Issuer) Issue(user *users.User) (string, time.Time, error) {
	now := NowTimeFunc()
	expiresAt := now.Add(i.expiry)

	claims := &Claims{
		Email:     user.Email,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Editor:    user.Editor,
		Admin:     user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, errors.Wrapf(err, "[Issuer Issue] user %s", user.ID)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
func (i *Issuer) Verify(rawToken string) (*Claims, error) {
	if rawToken == "" {
		return nil, errors.ErrMissingToken
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(rawToken, claims, i.signer.GetVerificationKey,
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
		jwt.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.Wrapf(errors.ErrInvalidToken, "%v", err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
