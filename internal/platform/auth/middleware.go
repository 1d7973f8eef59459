package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"sarpras-backend/internal/platform/apierr"
)

const (
	CtxUserIDKey = "user_id"

	CodeUnauthenticated apierr.Code = "UNAUTHENTICATED"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierr.Body(CodeUnauthenticated, msg))
}

// RequireAuth: Authorization: Bearer <token> を検証して context に sub を詰める
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			unauthorized(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c, "invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			unauthorized(c, "empty token")
			return
		}

		// alg 固定（none攻撃とか回避）
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || token == nil || !token.Valid {
			unauthorized(c, "invalid token")
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			unauthorized(c, "invalid sub")
			return
		}

		c.Set(CtxUserIDKey, sub)
		c.Next()
	}
}

// OperatorID は RequireAuth が詰めた操作者ID（未認証なら空）
func OperatorID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
