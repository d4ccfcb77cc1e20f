package login

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenTTL = 7 * 24 * time.Hour

// Jwt signs and parses portal access tokens.
type Jwt struct {
	Secret         string
	CookieHttpOnly bool
	CookieSecure   bool
}

type Option func(*Jwt)

func WithCookieHttpOnly(httpOnly bool) Option {
	return func(j *Jwt) {
		j.CookieHttpOnly = httpOnly
	}
}

func WithCookieSecure(secure bool) Option {
	return func(j *Jwt) {
		j.CookieSecure = secure
	}
}

func NewJwtServiceOptions(secret string, opts ...Option) *Jwt {
	jwtSvc := &Jwt{Secret: secret}

	for _, opt := range opts {
		opt(jwtSvc)
	}

	return jwtSvc
}

// CreateAccessToken signs an HS256 token carrying the given claims plus the
// registered time claims. Returns the token string and its expiry.
func (j *Jwt) CreateAccessToken(custom map[string]interface{}) (string, time.Time, error) {
	now := time.Now().UTC()
	expiry := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"exp": jwt.NewNumericDate(expiry),
		"iat": jwt.NewNumericDate(now),
		"nbf": jwt.NewNumericDate(now.Add(-5 * time.Minute)),
		"iss": "partner-portal",
		"jti": uuid.New().String(),
	}
	for k, v := range custom {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiry, nil
}

// ParseTokenStr verifies a token string and returns its claims.
func (j *Jwt) ParseTokenStr(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}
	return claims, nil
}
