package middleware

import (
	"context"
	"errors"
	"strings"

	"learnai_backend/internal/model"
	"learnai_backend/internal/util"
	"learnai_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionResolver 解析 token 并校验对应的会话是否仍然有效
type SessionResolver interface {
	ParseToken(token string) (*util.Claims, error)
	ResolveSession(ctx context.Context, claims *util.Claims) (*model.Session, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// authenticate 无 token 或会话无效时返回 nil, nil；只有存储错误才返回 error
func authenticate(c *gin.Context, resolver SessionResolver) (*model.Session, error) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return nil, nil
	}

	claims, err := resolver.ParseToken(tokenString)
	if err != nil {
		logger.Log.Debug("JWT解析错误", zap.Error(err))
		return nil, nil
	}

	session, err := resolver.ResolveSession(c.Request.Context(), claims)
	if errors.Is(err, util.ErrSessionInvalid) {
		logger.Log.Debug("会话无效", zap.String("session_id", claims.SessionID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Set(util.ContextClaims, claims)
	c.Set(util.ContextSession, session)
	return session, nil
}

// AuthMiddleware 必须登录
func AuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := authenticate(c, resolver)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		if session == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware 有合法 token 时设置会话，否则按匿名处理
func OptionalAuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authenticate(c, resolver); err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
