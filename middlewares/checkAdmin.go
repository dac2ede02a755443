package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin gates the moderation and settings surface. It runs after
// CheckAuth, which is what puts the "admin" flag on the context.
func CheckAdmin(c *gin.Context) {
	isAdmin := c.MustGet("admin").(bool)

	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin permission required"})
		return
	}

	c.Next()
}
