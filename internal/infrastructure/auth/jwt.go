package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing subject in claims")
	ErrNotConfigured    = errors.New("token verification is not configured")
)

// Claims are the access token claims issued by the hosted auth backend.
// The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserUUID parses the subject as a user ID
func (c *Claims) UserUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrMissingUserID
	}
	return id, nil
}

// ExpiresAtTime returns the expiry, zero when the token has none
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// JWTService validates access tokens. It never issues them.
type JWTService struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTService creates a validator for HS256 tokens signed with cfg.Secret.
// Issuer and audience are checked only when configured.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &JWTService{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

// ValidateAccessToken verifies the signature and time claims of tokenString
// and returns its claims with a parseable subject.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNotConfigured
	}
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidClaims
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, err
	}
	return claims, nil
}
