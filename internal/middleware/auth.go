package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tokenvest/internal/config"
	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/models"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

const defaultTokenExpiry = 24 * time.Hour

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

func tokenExpiry() time.Duration {
	if d := config.Get().JWTExpirationDur; d > 0 {
		return d
	}
	return defaultTokenExpiry
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates a signed access token for a user.
func GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "tokenvest-api",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseAccessToken validates tokenString and returns its claims.
func ParseAccessToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

func abort(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, apperrors.Body(appErr))
}

// AuthMiddleware verifies the JWT token and sets the user in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseAccessToken(parts[1])
		if err != nil {
			abort(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole admits only callers whose token carries one of roles. It must
// run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			abort(c, apperrors.ErrUnauthorized)
			return
		}
		role, _ := value.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abort(c, apperrors.WithMessage(apperrors.ErrForbidden, "This action requires the "+string(roles[0])+" role"))
	}
}
