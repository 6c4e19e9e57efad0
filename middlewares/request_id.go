package middlewares

import (
	"github.com/Luasgl/P2AULA2/global"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID reuses a client-supplied X-Request-ID or generates a UUID,
// stores it under global.CtxRequestIDKey and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(global.HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(global.CtxRequestIDKey, id)
		c.Header(global.HeaderRequestID, id)
		c.Next()
	}
}

// requestID reads the ID set by RequestID; "-" when the middleware is not installed.
func requestID(c *gin.Context) string {
	if id := c.GetString(global.CtxRequestIDKey); id != "" {
		return id
	}
	return "-"
}
