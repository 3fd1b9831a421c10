package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"time"
)

const ContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

func SecurityHeaders() gin.HandlerFunc {
	return secure.New(secure.Config{
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		ContentSecurityPolicy:   ContentSecurityPolicy,
		ReferrerPolicy:          "no-referrer",
		SSLProxyHeaders:         map[string]string{"X-Forwarded-Proto": "https"},
	})
}

// CORS allows credentialed requests from the configured origins only.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression)
}
