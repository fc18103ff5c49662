package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		// pointer moves arrive at mouse rate, keep them out of the log
		if c.Writer.Status() < 400 && c.FullPath() == "/api/v1/pointer" {
			return
		}

		session := SessionID(c)
		if session == "" {
			session = "-"
		}
		log.Printf("[%s] %s %s session=%s %d %v %s",
			c.Request.Method,
			path,
			c.ClientIP(),
			session,
			c.Writer.Status(),
			time.Since(start),
			c.Errors.String(),
		)
	}
}
