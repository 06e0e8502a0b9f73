package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the authenticated user id set by the auth
// middleware. The type switch covers the shapes JWT claims decode into;
// an unauthenticated context yields 0.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	}
	return 0
}
