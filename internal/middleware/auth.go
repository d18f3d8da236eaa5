package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/psgtech/campusfacility/internal/model"
	"github.com/psgtech/campusfacility/internal/repository"
	"github.com/psgtech/campusfacility/pkg/response"
)

type AuthMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo repository.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// resolve verifies the bearer token and loads the identity. Tampered and
// expired tokens get the same uniform outcome; a resolved identity must
// exist and be active.
func (m *AuthMiddleware) resolve(c *gin.Context, tokenString string) (*model.User, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, false
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil || !user.IsActive {
		return nil, false
	}

	return user, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth rejects requests without a valid credential. An absent
// credential and an invalid one are distinct outcomes.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, response.Envelope{Status: "error", Message: "authorization required"})
			c.Abort()
			return
		}

		user, ok := m.resolve(c, tokenString)
		if !ok {
			c.JSON(http.StatusUnauthorized, response.Envelope{Status: "error", Message: "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid credential is present and
// passes anonymous requests through. Used for the public announcement view.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if user, ok := m.resolve(c, tokenString); ok {
				c.Set("user_id", user.ID.String())
				c.Set("user", user)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(model.RoleAdmin)
}

// RequireRoles enforces role membership for the resolved identity.
func (m *AuthMiddleware) RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, response.Envelope{Status: "error", Message: "user not authenticated"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, response.Envelope{Status: "error", Message: "insufficient permissions"})
		c.Abort()
	}
}

// CurrentUser returns the identity attached by RequireAuth/OptionalAuth, or
// nil for anonymous callers.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
