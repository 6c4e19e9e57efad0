// simple request access log

package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger prints request id, method, path, status and duration for each request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path // keep before c.Next(); handlers may rewrite it
		c.Next()
		log.Printf("[http] %s %s %s %d %s",
			requestID(c),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start))
	}
}
