package proxy

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs each request through the shared zap logger so
// proxy traffic lands in the same sink and format as everything else;
// the stock gin logger writes its own format to stdout.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Infof("%s %s -> %d (%s)",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
		)
	}
}
