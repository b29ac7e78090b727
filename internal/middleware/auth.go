package middleware

import (
	"net/http"
	"strings"

	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey  = "user_id"
	ContextAdminIDKey = "admin_id"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// auth 校验 jwt + redis 单会话，通过后注入主体 id
func auth(kind, ctxKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing or malformed authorization header"})
			return
		}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}
		if claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "wrong principal type"})
			return
		}

		tokens := &redis.TokenRepository{}

		// redis校验是否是最后一次签发的token
		originToken, err := tokens.GetToken(kind, claims.PrincipalID)
		if err != nil || originToken != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "account has been logged in elsewhere"})
			return
		}

		// 校验通过后更新过期时间
		if err = tokens.ExtendToken(kind, claims.PrincipalID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ctxKey, claims.PrincipalID)
		c.Next()
	}
}

func AuthMiddleware() gin.HandlerFunc {
	return auth(pkg.PrincipalUser, ContextUserIDKey)
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return auth(pkg.PrincipalAdmin, ContextAdminIDKey)
}
