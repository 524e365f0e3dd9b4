package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/valuelens/internal/domain/dto"
	"github.com/guttosm/valuelens/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON response when the
// handler did not write one itself. An attached dto.ErrorResponse is sent as is.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	last := c.Errors.Last().Err
	logger.L().Error().Err(last).Str("path", c.Request.URL.Path).Msg("request failed")

	if resp, ok := last.(dto.ErrorResponse); ok {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last))
}

// AbortWithError stops the chain and writes status with a standard error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
