package proxy

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/logger"
)

func NewRouter(h *Handler) http.Handler {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Any(constants.AdvicePath, h.Advice)

	return r
}

// requestLogger records method, path, status and latency. Bodies are never
// logged since they carry the access code.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Millisecond),
		)
	}
}
