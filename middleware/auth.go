package middleware

import (
	"net/http"
	"strings"

	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the Bearer token and, when requiredRole is
// non-empty, enforces that the token carries it.
func JWTAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, err := utils.TokenClaims(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		role, _ := claims["role"].(string)
		if requiredRole != "" && role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("subject", sub)
		}
		c.Set("role", role)
		c.Next()
	}
}
