package handler

import (
	"VCS_Basic_Web_App/internal/web-server/api/dto/response"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const entryPage = "index.html"

type StaticHandler interface {
	NoRoute() gin.HandlerFunc
}

type staticHandler struct {
	logger *zap.Logger
	assets fs.FS
	files  http.FileSystem
	index  []byte
}

// NoRoute serves assets and the SPA fallback for GET/HEAD; every other unmatched request is a 404.
func (s *staticHandler) NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			s.logger.Debug("route not found", zap.String("http_method", c.Request.Method), zap.String("http_path", c.Request.URL.Path))
			c.JSON(http.StatusNotFound, response.Response{
				Status:  response.StatusError,
				Message: "Route not found",
			})
			return
		}
		name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if name != "" && name != entryPage && s.isFile(name) {
			c.FileFromFS("/"+name, s.files)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", s.index)
	}
}

func (s *staticHandler) isFile(name string) bool {
	info, err := fs.Stat(s.assets, name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func NewStaticHandler(l *zap.Logger, assets fs.FS) (StaticHandler, error) {
	index, err := fs.ReadFile(assets, entryPage)
	if err != nil {
		return nil, fmt.Errorf("NewStaticHandler: %w", err)
	}
	l.Debug("loaded entry page", zap.Int("bytes", len(index)))
	return &staticHandler{
		logger: l,
		assets: assets,
		files:  http.FS(assets),
		index:  index,
	}, nil
}
