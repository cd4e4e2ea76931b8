package rbac

import (
	"net/http"

	"salesops-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireTerritory enforces the scoping invariant: territory must exist in context.
// This does not validate assignment; that belongs to the authorization layer once
// rep/territory membership is persisted.
func RequireTerritory() gin.HandlerFunc {
	return func(c *gin.Context) {
		terr, err := auth.Territory(c.Request.Context())
		if err != nil || terr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "territory required"})
			return
		}
		c.Next()
	}
}

// RequireAnyRole allows access if the caller has any of the provided roles.
// Rules:
// - super_admin bypasses all checks
// - ops_support is a hidden role, and will be denied unless explicitly allowed
// - territory isolation is enforced via RequireTerritory (use it in the chain)
func RequireAnyRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, err := auth.Role(c.Request.Context())
		if err != nil || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "role required"})
			return
		}

		// super_admin bypasses all
		if IsSuperAdmin(role) {
			c.Next()
			return
		}

		// hidden roles are opt-in only
		if IsHiddenRole(role) {
			if _, ok := allowedSet[role]; !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
