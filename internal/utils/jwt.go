package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultAdminTokenTTL = time.Hour

// JWTManager signs and verifies admin session tokens. Now is optional and
// only overridden by tests that need to mint already-expired tokens.
type JWTManager struct {
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
	Now      func() time.Time
}

type AdminClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (m JWTManager) IssueAdminToken(subject string) (string, time.Duration, error) {
	ttl := m.ttl()
	now := m.now()
	claims := AdminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

func (m JWTManager) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.Issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	}, options...)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL reports the lifetime given to newly issued tokens.
func (m JWTManager) TTL() time.Duration {
	return m.ttl()
}

func (m JWTManager) ttl() time.Duration {
	if m.TokenTTL > 0 {
		return m.TokenTTL
	}
	return DefaultAdminTokenTTL
}

func (m JWTManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
