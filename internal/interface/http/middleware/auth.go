package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyEmail  = "email"
	ctxKeyRole   = "role"
	ctxKeyToken  = "access_token"
)

// TokenBlacklist 已登出Token查询
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单（已登出）
// 3. 验证签名并解析Claims
// 4. 将馆员信息和角色注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	issues := api.Group("/issues")
//	issues.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			response.Abort(c, err)
			return
		}

		blacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if blacklisted {
			response.Abort(c, apperrors.ErrTokenExpired.WithMessage("Token has been revoked, please log in again"))
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Abort(c, err) // ErrTokenExpired / ErrInvalidToken
			return
		}

		setClaims(c, claims, tokenString)
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有合法Token时注入馆员信息，没有或不合法时按匿名继续
// 注册接口用它区分首个管理员引导和管理员创建账号
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err == nil {
			blacklisted, berr := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
			if berr == nil && !blacklisted {
				if claims, perr := m.jwtManager.ParseToken(tokenString); perr == nil {
					setClaims(c, claims, tokenString)
				}
			}
		}

		c.Next()
	}
}

// RequireRole 要求指定角色之一，必须放在RequireAuth之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Abort(c, apperrors.ErrForbidden)
	}
}

// bearerToken 解析 Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.ErrUnauthorized
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrInvalidToken.WithMessage("Authorization header must be: Bearer <token>")
	}
	return strings.TrimSpace(parts[1]), nil
}

func setClaims(c *gin.Context, claims *jwt.Claims, token string) {
	c.Set(ctxKeyUserID, claims.UserID)
	c.Set(ctxKeyEmail, claims.Email)
	c.Set(ctxKeyRole, claims.Role)
	c.Set(ctxKeyToken, token)
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录馆员ID，未登录为0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxKeyUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录馆员邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxKeyEmail)
}

// GetRole 从Context获取当前登录馆员角色
func GetRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}

// GetToken 从Context获取当前请求的Access Token（登出时加入黑名单）
func GetToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
