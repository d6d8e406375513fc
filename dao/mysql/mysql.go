package mysql

import (
	"context"
	"fmt"
	"time"

	"usof/models"
	"usof/settings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// 包名沿用 mysql，实际通过 gorm 支持 mysql / postgres / sqlite 三种驱动
var db *gorm.DB

// Option 初始化选项
type Option func(*options)

type options struct {
	tracing bool
}

// WithTracing 为 gorm 注册 OpenTelemetry 插件
func WithTracing(enabled bool) Option {
	return func(o *options) { o.tracing = enabled }
}

// Init 建立连接池，按配置自动迁移表结构
func Init(cfg *settings.DatabaseConfig, opts ...Option) (err error) {
	if cfg == nil {
		return fmt.Errorf("mysql.Init received nil config")
	}
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}

	dialector, err := newDialector(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gormConfig := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel(cfg.LogLevel)),
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
		// 唯一索引冲突统一翻译成 gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	db, err = gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("connect to %s failed: %w", cfg.Driver, err)
	}

	if o.tracing {
		if err = db.Use(tracing.NewPlugin()); err != nil {
			return fmt.Errorf("register gorm tracing plugin failed: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB failed: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s failed: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	// 小于 MySQL wait_timeout，避免拿到被服务端断开的连接
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	if cfg.AutoMigrate {
		if err = Migrate(); err != nil {
			return err
		}
	}

	zap.L().Info("init database success",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host))
	return nil
}

func newDialector(cfg *settings.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DbName)
		}
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
				cfg.Host, cfg.User, cfg.Password, cfg.DbName, cfg.Port)
		}
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = cfg.DbName + ".db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate 创建或更新全部表结构
func Migrate() error {
	err := db.AutoMigrate(
		&models.User{},
		&models.EmailToken{},
		&models.PasswordResetToken{},
		&models.Category{},
		&models.Post{},
		&models.PostCategory{},
		&models.Comment{},
		&models.Reaction{},
		&models.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func Close() {
	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func GetDB() *gorm.DB {
	return db
}
