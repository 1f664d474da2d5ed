package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockledger/pkg/models"
	"stockledger/pkg/roles"
)

const roleContextKey = "role"

// JWTMiddleware validates the session token and stores the role in the
// request context.
func JWTMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		role, err := tokens.ParseRole(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RoleFromContext returns the role the middleware stored for this request.
func RoleFromContext(c *gin.Context) (roles.Role, bool) {
	value, exists := c.Get(roleContextKey)
	if !exists {
		return "", false
	}
	role, ok := value.(roles.Role)
	return role, ok
}

// RequireCategoryAccess blocks roles from item categories they may not see.
// The product-only role never reaches part-category data.
func RequireCategoryAccess(c *gin.Context, itemType models.ItemType) bool {
	role, ok := RoleFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return false
	}
	if !role.CanAccess(itemType) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: role cannot access this category"})
		return false
	}
	return true
}
