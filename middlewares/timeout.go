package middlewares

import (
	"context"
	"time"

	"usof/controller"
	"usof/pkg/errorx"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
)

// TimeoutMiddleware 请求超时中间件，超时后返回 504
// 请求的 context 同时带上截止时间，数据库和 redis 调用会随之取消
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	h := timeout.New(
		timeout.WithTimeout(d),
		timeout.WithResponse(func(c *gin.Context) {
			controller.ResponseError(c, errorx.ErrTimeout)
		}),
	)
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		h(c)
	}
}
