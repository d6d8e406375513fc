package middlewares

import (
	"time"

	"usof/controller"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// RateLimitMiddleware 令牌桶限流
// fillInterval: 每隔多久往桶里放一个令牌（10ms = 每秒100个令牌）
// capacity: 桶的容量，即允许的最大突发请求数
func RateLimitMiddleware(fillInterval time.Duration, capacity int64) gin.HandlerFunc {
	bucket := ratelimit.NewBucket(fillInterval, capacity)

	return func(c *gin.Context) {
		// 非阻塞取 1 个令牌，取不到说明桶空了
		if bucket.TakeAvailable(1) < 1 {
			controller.ResponseError(c, errorx.ErrRateLimitExceeded)
			c.Abort()
			return
		}
		c.Next()
	}
}
