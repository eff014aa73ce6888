package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"collegesphere/models"
	"collegesphere/utils"
)

// Context keys populated by Authenticate.
const (
	CtxUserID     = "userId"
	CtxRole       = "role"
	CtxIsApproved = "isApproved"
	CtxCollegeID  = "collegeId"
)

// Authenticate verifies the bearer token and stashes the claims snapshot in
// the request context.
func Authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization token required."})
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token."})
		return
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxIsApproved, claims.IsApproved)
	c.Set(CtxCollegeID, claims.CollegeID)
	c.Next()
}

// CurrentRole returns the authenticated caller's role.
func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(CtxRole); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}

// RequireRoles gates a route on the closed role set. Unapproved organizers
// are rejected on every route, whatever the route's role list says: approval
// is a cross-cutting invariant, not a per-endpoint permission.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)

		if role == models.RoleOrganizer && !c.GetBool(CtxIsApproved) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Organizer approval pending."})
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Insufficient permissions."})
	}
}
