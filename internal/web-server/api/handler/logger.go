package handler

import (
	"VCS_Basic_Web_App/internal/web-server/api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	LoggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level)
}

type logger struct {
	log *zap.Logger
}

func (l *logger) LoggingError(c *gin.Context, err error, errDescription string, logLevel zapcore.Level) {
	data := []zapcore.Field{
		zap.Error(err),
		zap.String("http_method", c.Request.Method),
		zap.String("http_path", c.Request.URL.Path),
	}
	if requestID := c.GetString(middleware.RequestIDContextKey); requestID != "" {
		data = append(data, zap.String("request_id", requestID))
	}
	l.log.Log(logLevel, errDescription, data...)
}

func NewLogger(l *zap.Logger) Logger {
	return &logger{
		log: l,
	}
}
