package member

import (
	"net/http"

	"clubhouse/internal/api"
	"clubhouse/internal/auth"

	"github.com/gin-gonic/gin"
)

const contextKey = "member_context"

// RequireMember resolves the caller's member context once and stores it on
// the request context for handlers and chat tools to reuse. Requests from
// authenticated users with no member row are rejected with 404.
func RequireMember(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		mc, err := svc.ResolveByUser(c.Request.Context(), userID)
		if err != nil {
			api.Fail(c, err)
			c.Abort()
			return
		}

		c.Set(contextKey, mc)
		c.Next()
	}
}

// RequireAdmin must run after RequireMember.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		mc, ok := FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		if mc.Role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func FromContext(c *gin.Context) (*MemberWithTier, bool) {
	val, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}

	mc, ok := val.(*MemberWithTier)
	if !ok {
		return nil, false
	}

	return mc, true
}
