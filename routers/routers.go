package routers

import (
	"net/http"
	"time"

	"usof/controller"
	"usof/logger"
	"usof/middlewares"
	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/metrics"
	"usof/settings"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// rateLimitConfig 配置缺失或解析失败时默认 10ms 一个令牌、容量 200
func rateLimitConfig() (time.Duration, int64) {
	fillInterval, capacity := 10*time.Millisecond, int64(200)
	if c := settings.Conf.RateLimit; c != nil {
		fillInterval = settings.ParseDuration(c.FillInterval, fillInterval)
		if c.Capacity > 0 {
			capacity = c.Capacity
		}
	}
	return fillInterval, capacity
}

func requestTimeout() time.Duration {
	if c := settings.Conf.Auth; c != nil {
		return settings.ParseDuration(c.RequestTimeout, 10*time.Second)
	}
	return 10 * time.Second
}

// SetupRouter 初始化路由配置
// mode: 运行模式 (debug, release, test)
func SetupRouter(mode string) *gin.Engine {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	}

	r := gin.New()
	if c := settings.Conf.Tracing; c != nil && c.Enabled {
		r.Use(otelgin.Middleware(c.ServiceName))
	}

	fillInterval, capacity := rateLimitConfig()
	r.Use(
		logger.GinLogger(),
		logger.GinRecovery(true),
		middlewares.MetricsMiddleware(),
		middlewares.RateLimitMiddleware(fillInterval, capacity),
		middlewares.TimeoutMiddleware(requestTimeout()),
	)

	// Swagger 文档仅在非生产环境中开放，pprof 仅在 debug 模式
	if mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if mode == gin.DebugMode {
		pprof.Register(r)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if c := settings.Conf.Upload; c != nil && c.Dir != "" && c.URLPrefix != "" {
		r.Static(c.URLPrefix, c.Dir)
	}

	v1 := r.Group("/api/v1")
	registerAuth(v1)

	// 公开读接口：携带 token 时按登录用户处理可见性
	public := v1.Group("")
	public.Use(middlewares.OptionalAuthMiddleware())
	registerPublic(public)

	// 需要 Header 中携带 Authorization: Bearer <token>
	authGroup := v1.Group("")
	authGroup.Use(middlewares.JWTAuthMiddleware())
	registerAuthorized(authGroup)

	admin := v1.Group("")
	admin.Use(middlewares.JWTAuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	registerAdmin(admin)

	r.NoRoute(func(c *gin.Context) {
		controller.ResponseError(c, errorx.ErrNotFound.WithMsg("404 page not found"))
	})
	return r
}

func registerAuth(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", controller.SignUpHandler)
		auth.GET("/confirm-email/:token", controller.ConfirmEmailHandler)
		auth.POST("/login", controller.LoginHandler)
		auth.POST("/refresh", controller.RefreshTokenHandler)
		auth.POST("/password-reset", controller.PasswordResetHandler)
		auth.POST("/password-reset/:token", controller.PasswordResetConfirmHandler)
		auth.POST("/logout", middlewares.JWTAuthMiddleware(), middlewares.ForgetSession(), controller.LogoutHandler)
	}
}

func registerPublic(g *gin.RouterGroup) {
	// 用户
	g.GET("/users", controller.GetUserListHandler)
	g.GET("/users/:id", controller.GetUserHandler)

	// 帖子
	g.GET("/posts", controller.GetPostListHandler)
	g.GET("/posts/search", controller.SearchPostsHandler)
	g.GET("/posts/feed", controller.GetFeedHandler)
	g.GET("/posts/:id", controller.GetPostDetailHandler)
	g.GET("/posts/:id/categories", controller.GetPostCategoriesHandler)
	g.GET("/posts/:id/comments", controller.GetPostCommentsHandler)
	g.GET("/posts/:id/like", controller.ListReactionsHandler(models.TargetPost))

	// 评论
	g.GET("/comments/:id", controller.GetCommentHandler)
	g.GET("/comments/:id/like", controller.ListReactionsHandler(models.TargetComment))

	// 分类
	g.GET("/categories", controller.CategoryListHandler)
	g.GET("/categories/:id", controller.CategoryDetailHandler)
	g.GET("/categories/:id/posts", controller.CategoryPostsHandler)
}

func registerAuthorized(g *gin.RouterGroup) {
	// 用户
	g.PATCH("/users/:id", middlewares.ForgetUserSession("id"), controller.UpdateUserHandler)
	g.DELETE("/users/:id", middlewares.ForgetUserSession("id"), controller.DeleteUserHandler)
	g.PATCH("/users/:id/avatar", controller.UploadAvatarHandler)
	g.GET("/users/:id/favorites", controller.GetUserFavoritesHandler)
	g.GET("/users/:id/posts", controller.GetUserPostsHandler)

	// 帖子
	g.POST("/posts", controller.CreatePostHandler)
	g.PATCH("/posts/:id", controller.UpdatePostHandler)
	g.DELETE("/posts/:id", controller.DeletePostHandler)
	g.POST("/posts/:id/comments", controller.CreateCommentHandler)
	g.POST("/posts/:id/like", controller.SetReactionHandler(models.TargetPost))
	g.PUT("/posts/:id/like", controller.SwitchReactionHandler(models.TargetPost))
	g.DELETE("/posts/:id/like", controller.ClearReactionHandler(models.TargetPost))
	g.POST("/posts/:id/favorite", controller.AddFavoriteHandler)
	g.DELETE("/posts/:id/favorite", controller.RemoveFavoriteHandler)

	// 评论
	g.PATCH("/comments/:id", controller.SetCommentStatusHandler)
	g.DELETE("/comments/:id", controller.DeleteCommentHandler)
	g.POST("/comments/:id/like", controller.SetReactionHandler(models.TargetComment))
	g.PUT("/comments/:id/like", controller.SwitchReactionHandler(models.TargetComment))
	g.DELETE("/comments/:id/like", controller.ClearReactionHandler(models.TargetComment))
}

func registerAdmin(g *gin.RouterGroup) {
	g.POST("/users", controller.CreateUserHandler)
	g.POST("/users/:id/rating/recompute", controller.RecomputeRatingHandler)

	g.POST("/categories", controller.CreateCategoryHandler)
	g.PATCH("/categories/:id", controller.UpdateCategoryHandler)
	g.DELETE("/categories/:id", controller.DeleteCategoryHandler)

	a := g.Group("/admin")
	{
		a.GET("/dashboard", controller.DashboardHandler)
		a.GET("/posts", controller.AdminPostListHandler)
		a.GET("/comments", controller.AdminCommentListHandler)
		a.PATCH("/posts/:id/status", controller.AdminSetPostStatusHandler)
		a.POST("/recompute", controller.RecomputeAllHandler)
	}
}
