package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/infrastructure/auth"
	"github.com/salonfin/backend/internal/infrastructure/logger"
	"github.com/salonfin/backend/internal/interfaces/http/dto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
	bearerPrefix = "Bearer "
)

// TokenValidator verifies an access token
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// SkipPaths are exact paths served without authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth requires a valid bearer token and stores the caller's user ID
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, bearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			logger.Enrich(c.Request.Context(), log).Warn("JWT authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}
		userID, err := claims.UserUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)

		ctx := logger.WithUserID(c.Request.Context(), userID.String())
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("user_id", userID.String()))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetUserID returns the authenticated user's ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(JWTUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetJWTClaims returns the validated token claims
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
