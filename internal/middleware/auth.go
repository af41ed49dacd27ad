package middleware

import (
	"net/http"

	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the name of the session cookie.
const TokenCookie = "token"

// contextUserIDKey 经过鉴权后放入 gin context 的用户 ID
const contextUserIDKey = "currentUserID"

// AuthMiddleware 校验 cookie 里的 JWT，并在 context 里放入当前用户 ID。
// 没有 cookie 返回 401，token 无效或过期返回 403，两种失败对客户端都只给
// 固定文案。中间件本身不访问存储。
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(TokenCookie)
		if err != nil || tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusForbidden, util.CodeAuth, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id attached by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
