package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ProfileIDKey is the gin context key holding the authenticated profile id.
const ProfileIDKey = "profile_id"

// AuthMiddleware verifies HS256 access tokens issued by the auth service.
// Token issuance is not this service's concern; only the profile_id claim is
// consumed here.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// RequireAuth aborts with 401 unless a valid bearer token is present.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, err := m.profileIDFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ProfileIDKey, profileID)
		c.Next()
	}
}

// OptionalAuth sets the profile id when a valid token is present and lets the
// request through either way. Used on public profile views, where an
// anonymous viewer sees a more redacted payload.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if profileID, err := m.profileIDFromRequest(c); err == nil {
			c.Set(ProfileIDKey, profileID)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) profileIDFromRequest(c *gin.Context) (int, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, fmt.Errorf("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	id, ok := claims[ProfileIDKey].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("missing profile_id claim")
	}
	return int(id), nil
}
