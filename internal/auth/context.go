package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, "userID")
}

// GetTenantID returns the authenticated user's tenant ID or empty string.
func GetTenantID(c *gin.Context) string {
	return getString(c, "tenantID")
}

// GetRole returns the authenticated user's role or empty string.
func GetRole(c *gin.Context) string {
	return getString(c, "userRole")
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
