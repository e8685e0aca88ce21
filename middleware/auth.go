package middleware

import (
	"strings"

	"pollsite/helper"
	"pollsite/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	contextUserID   = "user_id"
	contextUsername = "username"
	contextRole     = "role"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware rejects requests without a valid bearer token signed with
// secret and stores the caller's identity in the context.
func AuthMiddleware(h *helper.HTTPHelper, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "Authorization header required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})

		if err != nil {
			h.SendUnauthorizedError(c, "Invalid token: "+err.Error(), h.EmptyJsonMap())
			c.Abort()
			return
		}

		if !token.Valid || claims.UserID == 0 {
			h.SendUnauthorizedError(c, "Token is not valid", h.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextUsername, claims.Username)
		c.Set(contextRole, claims.Role)

		c.Next()
	}
}

func RequireRole(h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(contextRole)
		if !exists {
			h.SendUnauthorizedError(c, "User role not found", h.EmptyJsonMap())
			c.Abort()
			return
		}

		roleStr, _ := userRole.(string)
		for _, role := range roles {
			if roleStr == string(role) {
				c.Next()
				return
			}
		}

		h.SendForbiddenError(c, "Insufficient permissions", h.EmptyJsonMap())
		c.Abort()
	}
}

// CurrentActor returns the authenticated caller set by AuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	userID, ok := c.Get(contextUserID)
	if !ok {
		return models.Actor{}, false
	}
	id, ok := userID.(uint)
	if !ok {
		return models.Actor{}, false
	}

	role, _ := c.Get(contextRole)
	roleStr, _ := role.(string)
	return models.Actor{UserID: id, Role: models.UserRole(roleStr)}, true
}
