package middleware

import (
	"VCS_Basic_Web_App/internal/web-server/api/dto/response"
	apperrors "VCS_Basic_Web_App/internal/web-server/errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error, unless a response was already written.
// Outside production the real error text is exposed.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		abortWithError(c, c.Errors.Last().Err, production)
	}
}

// Recovery turns panics into internal errors with the same envelope as ErrorHandler.
func Recovery(l *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err := apperrors.NewInternalError(fmt.Errorf("panic recovered: %v", recovered))
		l.Error("unhandled panic",
			zap.Error(err),
			zap.String("http_method", c.Request.Method),
			zap.String("http_path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDContextKey)),
			zap.Stack("stack"),
		)
		abortWithError(c, err, production)
	})
}

func abortWithError(c *gin.Context, err error, production bool) {
	message := apperrors.PublicMessage(err)
	if !production {
		message = err.Error()
	}
	c.AbortWithStatusJSON(apperrors.StatusCode(err), response.Response{
		Status:  response.StatusError,
		Message: message,
	})
}
