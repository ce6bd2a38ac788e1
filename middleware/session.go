package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader là header mang sessionId giữa client và server
const SessionHeader = "X-Session-ID"

// SessionKey là key của sessionId trong gin context
const SessionKey = "sessionId"

// SessionMiddleware gán sessionId cho mỗi request: lấy từ header nếu client
// gửi lên, không thì sinh UUID mới, rồi trả lại qua header để client giữ.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(SessionKey, sessionID)
		c.Writer.Header().Set(SessionHeader, sessionID)

		c.Next()
	}
}
