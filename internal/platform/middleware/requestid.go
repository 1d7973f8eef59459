package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID はクライアント指定の X-Request-ID を引き継ぎ、無ければ採番する
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// LogFormatter は gin のアクセスログにリクエストIDを付ける
func LogFormatter(p gin.LogFormatterParams) string {
	id, _ := p.Keys[ctxRequestID].(string)
	return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %s | rid=%s\n%s",
		p.TimeStamp.Format("2006/01/02 - 15:04:05"),
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		p.Path,
		id,
		p.ErrorMessage,
	)
}
