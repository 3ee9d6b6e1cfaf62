package middleware

import (
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireAdmin only lets administrators of the resolved tenant through.
// It must run after CurrentUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := GetTenant(c)
		if !ok {
			AbortWithProblem(c, dto.ErrCodeUnauthorized, "Full authentication is required to access this resource")
			return
		}
		if !tc.Admin {
			AbortWithProblem(c, dto.ErrCodeForbidden, "Access is denied")
			return
		}
		c.Next()
	}
}
