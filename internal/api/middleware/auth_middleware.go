package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio/internal/auth"
)

const usernameKey = "username"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware 校验访问令牌并将用户名注入上下文。
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// UsernameFromContext returns the authenticated editor, if any.
func UsernameFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get(usernameKey)
	if !ok {
		return "", false
	}
	name, ok := value.(string)
	return name, ok && name != ""
}
