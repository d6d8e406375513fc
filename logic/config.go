package logic

import (
	"strings"
	"time"

	"usof/settings"
)

// 配置读取集中在这里，配置段缺失时使用默认值

func userCacheTTL() time.Duration {
	if c := settings.Conf.Redis; c != nil {
		return settings.ParseDuration(c.UserCacheTTL, 5*time.Minute)
	}
	return 5 * time.Minute
}

func mailTokenTTL() time.Duration {
	if c := settings.Conf.Mail; c != nil {
		return settings.ParseDuration(c.TokenTTL, time.Hour)
	}
	return time.Hour
}

func feedConcurrency() int {
	if c := settings.Conf.Feed; c != nil && c.Concurrency > 0 {
		return c.Concurrency
	}
	return 5
}

func baseURL() string {
	if c := settings.Conf.App; c != nil && c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "http://127.0.0.1:8080"
}

func frontendURL() string {
	if c := settings.Conf.App; c != nil && c.FrontendURL != "" {
		return strings.TrimRight(c.FrontendURL, "/")
	}
	return "http://127.0.0.1:3000"
}

func uploadConfig() settings.UploadConfig {
	cfg := settings.UploadConfig{Dir: "./uploads", URLPrefix: "/uploads", AvatarSize: 256}
	if c := settings.Conf.Upload; c != nil {
		if c.Dir != "" {
			cfg.Dir = c.Dir
		}
		if c.URLPrefix != "" {
			cfg.URLPrefix = strings.TrimRight(c.URLPrefix, "/")
		}
		if c.AvatarSize > 0 {
			cfg.AvatarSize = c.AvatarSize
		}
		cfg.MaxBytes = c.MaxBytes
	}
	return cfg
}
