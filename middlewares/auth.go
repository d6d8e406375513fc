package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"usof/controller"
	"usof/dao/redis"
	"usof/pkg/errno"
	"usof/pkg/errorx"
	"usof/pkg/jwt"
	"usof/settings"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// 本地 Token 缓存，减少 Redis 查询压力：userID -> 当前有效的 access token
var (
	cacheExpireDuration = 5 * time.Minute
	tokenCache          = expirable.NewLRU[int64, string](10000, nil, cacheExpireDuration)
)

var errOtherDevice = errorx.ErrInvalidToken.WithMsg("账号已在其他设备登录")

func strictSSO() bool {
	return settings.Conf.Auth != nil && settings.Conf.Auth.StrictSSO
}

// bearerToken 解析 Authorization: Bearer <token>；没有请求头时 present 为 false
func bearerToken(c *gin.Context) (token string, present bool, err error) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
		return "", true, errorx.ErrInvalidToken.WithMsg("Token格式错误")
	}
	return parts[1], true, nil
}

// authenticate 校验 token 并把用户信息写入上下文，失败时已写好响应
func authenticate(c *gin.Context, token string) bool {
	mc, err := jwt.ParseToken(token)
	if err != nil {
		controller.ResponseError(c, errorx.ErrInvalidToken)
		c.Abort()
		return false
	}
	if !validateSession(c, mc.UserID, token) {
		return false
	}
	c.Set(controller.CtxUserIDKey, mc.UserID)
	c.Set(controller.CtxUserRoleKey, mc.Role)
	return true
}

// validateSession 单点登录校验：token 必须是 redis 中当前有效的那一个
// 严格模式下 redis 不可用时拒绝请求；宽松模式下仅依赖 JWT 本身的有效性
func validateSession(c *gin.Context, userID int64, token string) bool {
	if cached, ok := tokenCache.Get(userID); ok && cached == token {
		return true
	}

	redisToken, err := redis.GetUserAccessToken(c.Request.Context(), userID)
	if err != nil {
		// 已登出或过期
		if errors.Is(err, errno.ErrorCacheMiss) {
			controller.ResponseError(c, errorx.ErrNeedLogin)
			c.Abort()
			return false
		}
		if strictSSO() {
			zap.L().Error("redis token check failed", zap.Int64("user_id", userID), zap.Error(err))
			controller.ResponseError(c, errorx.ErrServerBusy)
			c.Abort()
			return false
		}
		zap.L().Warn("redis token check failed, falling back to jwt only",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return true
	}

	if token != redisToken {
		controller.ResponseError(c, errOtherDevice)
		c.Abort()
		return false
	}
	tokenCache.Add(userID, token)
	return true
}

// JWTAuthMiddleware 必须登录
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := bearerToken(c)
		if !present {
			controller.ResponseError(c, errorx.ErrNeedLogin)
			c.Abort()
			return
		}
		if err != nil {
			controller.HandleError(c, err)
			c.Abort()
			return
		}
		if !authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware 携带 token 时解析出访问者，否则按匿名访问处理
// 携带了无效 token 仍然返回 401，避免客户端误以为自己已登录
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if err != nil {
			controller.HandleError(c, err)
			c.Abort()
			return
		}
		if !authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// RequireRole 放在 JWTAuthMiddleware 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(controller.CtxUserRoleKey) != role {
			controller.ResponseError(c, errorx.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ForgetSession 登出成功后清掉本地缓存，避免缓存期内旧 token 继续可用
func ForgetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := controller.GetCurrentUser(c)
		c.Next()
		if err == nil && c.Writer.Status() == http.StatusOK {
			tokenCache.Remove(uid)
		}
	}
}

// ForgetUserSession 路径参数 param 指定的用户被删除或改了角色后，清掉该用户的本地缓存
// redis 中的 token 由 logic 层删除，缓存清掉后下一次请求会回源 redis 并被拒绝
func ForgetUserSession(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() != http.StatusOK {
			return
		}
		if uid, err := strconv.ParseInt(c.Param(param), 10, 64); err == nil {
			tokenCache.Remove(uid)
		}
	}
}
