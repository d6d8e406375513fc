package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usof/controller"
	"usof/dao/es"
	"usof/dao/mysql"
	"usof/dao/redis"
	_ "usof/docs" // 导入生成的 Swagger 文档包
	"usof/logger"
	"usof/pkg/jwt"
	"usof/pkg/mailer"
	"usof/pkg/snowflake"
	"usof/pkg/tracing"
	"usof/routers"
	"usof/settings"

	"go.uber.org/zap"
)

// @title usof 接口文档
// @version 1.0
// @description 问答社区服务：帖子、评论、分类、点赞与评分
// @host 127.0.0.1:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	var confFile string
	flag.StringVar(&confFile, "conf", "./config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	if err := settings.Init(confFile); err != nil {
		fmt.Printf("init settings failed, err:%v\n", err)
		return
	}
	if err := snowflake.Init(settings.Conf.Snowflake.StartTime, settings.Conf.Snowflake.MachineID); err != nil {
		fmt.Printf("init snowflake failed, err:%v\n", err)
		return
	}

	// 2. 初始化日志
	if err := logger.Init(settings.Conf.Log, settings.Conf.App.Mode); err != nil {
		fmt.Printf("init logger failed, err:%v\n", err)
		return
	}
	defer zap.L().Sync()

	if a := settings.Conf.Auth; a != nil {
		if a.JWTSecret == "" {
			zap.L().Warn("auth.jwt_secret is empty, using the built-in development secret")
		}
		jwt.Init(a.JWTSecret,
			settings.ParseDuration(a.AccessTokenTTL, 0),
			settings.ParseDuration(a.RefreshTokenTTL, 0))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, settings.Conf.Tracing)
	if err != nil {
		zap.L().Fatal("init tracing failed", zap.Error(err))
	}
	tracingEnabled := settings.Conf.Tracing != nil && settings.Conf.Tracing.Enabled

	// 3. 核心依赖挂了直接退出
	if err = mysql.Init(settings.Conf.Database, mysql.WithTracing(tracingEnabled)); err != nil {
		zap.L().Fatal("init database failed", zap.Error(err))
	}
	defer mysql.Close()

	if err = redis.Init(settings.Conf.Redis); err != nil {
		zap.L().Fatal("init redis failed", zap.Error(err))
	}
	defer redis.Close()

	// 4. 可选组件
	if err = es.Init(settings.Conf.Elasticsearch); err != nil {
		zap.L().Error("init elasticsearch failed, search falls back to sql", zap.Error(err))
	}
	closeMail := initMailer(ctx)
	defer closeMail()

	if err = controller.InitTrans(settings.Conf.App.Locale); err != nil {
		zap.L().Fatal("init validator trans failed", zap.Error(err))
	}

	// 5. 注册路由并启动服务
	r := routers.SetupRouter(settings.Conf.App.Mode)
	port := settings.Conf.App.Port
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
	go func() {
		zap.L().Info("Server is running...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("listen failed", zap.Error(err))
		}
	}()

	// 6. 优雅关机：等待信号，最多给 5 秒处理完当前请求
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutdown Server ...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server Shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zap.L().Warn("tracing shutdown failed", zap.Error(err))
	}
	zap.L().Info("Server exiting")
}

// initMailer 启用 RabbitMQ 时 API 只负责投递，同进程内的消费者负责真正发送
// 返回的函数在退出时释放连接
func initMailer(ctx context.Context) func() {
	smtpSender := mailer.NewSMTPSender(settings.Conf.Mail)
	mq := settings.Conf.RabbitMQ
	if mq == nil || !mq.Enabled {
		mailer.SetSender(smtpSender)
		return func() {}
	}

	q, err := mailer.NewQueueSender(mq.URL, mq.MailQueue)
	if err != nil {
		zap.L().Error("init rabbitmq mail queue failed, sending mail directly", zap.Error(err))
		mailer.SetSender(smtpSender)
		return func() {}
	}
	go func() {
		if err := q.Consume(ctx, smtpSender); err != nil {
			zap.L().Error("mail consumer stopped", zap.Error(err))
		}
	}()
	mailer.SetSender(q)
	zap.L().Info("mail goes through rabbitmq", zap.String("queue", mq.MailQueue))
	return q.Close
}
