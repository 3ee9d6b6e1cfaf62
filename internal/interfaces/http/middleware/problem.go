package middleware

import (
	"github.com/ak/backend/internal/infrastructure/logger"
	"github.com/ak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AbortWithProblem stops the chain and writes a problem body whose status
// is derived from the error code
func AbortWithProblem(c *gin.Context, code, detail string) {
	status := dto.GetHTTPStatus(code)
	problem := dto.NewProblem(status, code, detail).
		WithRequest(c.Request.URL.Path, c.GetString(logger.GinRequestIDKey))
	c.AbortWithStatusJSON(status, problem)
}
