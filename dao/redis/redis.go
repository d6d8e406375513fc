package redis

import (
	"context"
	"fmt"
	"time"

	"usof/settings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rdb 全局共享一个连接池
var rdb *redis.Client

// Init 建立连接并 Ping，失败直接返回让启动中止
func Init(cfg *settings.RedisConfig) error {
	if cfg == nil {
		return fmt.Errorf("redis config is nil")
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis failed: %w", err)
	}

	zap.L().Info("init redis success",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)
	return nil
}

// Client 暴露底层客户端，供健康检查使用
func Client() *redis.Client {
	return rdb
}

func Close() {
	if rdb != nil {
		_ = rdb.Close()
	}
}
