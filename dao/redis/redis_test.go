package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"usof/models"
	"usof/pkg/errno"
	"usof/settings"

	"github.com/alicebob/miniredis/v2"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, context.Context) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	port, _ := strconv.Atoi(portStr)
	if err = Init(&settings.RedisConfig{Host: host, Port: port, PoolSize: 2}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)
	return mr, context.Background()
}

func TestInitUnreachable(t *testing.T) {
	err := Init(&settings.RedisConfig{Host: "127.0.0.1", Port: 1})
	if err == nil {
		t.Fatal("expected connect error")
	}
	if err = Init(nil); err == nil {
		t.Fatal("expected nil config error")
	}
}

func TestUserTokens(t *testing.T) {
	mr, ctx := setupRedis(t)

	if err := SetUserToken(ctx, 7, "access", "refresh", time.Minute, time.Hour); err != nil {
		t.Fatalf("SetUserToken: %v", err)
	}
	if got, err := GetUserAccessToken(ctx, 7); err != nil || got != "access" {
		t.Fatalf("GetUserAccessToken = %q, %v", got, err)
	}
	if got, err := GetUserRefreshToken(ctx, 7); err != nil || got != "refresh" {
		t.Fatalf("GetUserRefreshToken = %q, %v", got, err)
	}
	if !mr.Exists("usof:active_access_token:7") {
		t.Fatal("access token key missing")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := GetUserAccessToken(ctx, 7); !errors.Is(err, errno.ErrorCacheMiss) {
		t.Fatalf("expired access token err = %v", err)
	}

	if err := DeleteUserToken(ctx, 7); err != nil {
		t.Fatalf("DeleteUserToken: %v", err)
	}
	if _, err := GetUserRefreshToken(ctx, 7); !errors.Is(err, errno.ErrorCacheMiss) {
		t.Fatalf("deleted refresh token err = %v", err)
	}
}

func TestUserCache(t *testing.T) {
	mr, ctx := setupRedis(t)

	if _, err := GetUser(ctx, 42); !errors.Is(err, errno.ErrorCacheMiss) {
		t.Fatalf("miss err = %v", err)
	}
	u := &models.User{UserID: 42, Login: "neo", Rating: 3, PasswordHash: "secret", Role: models.RoleUser}
	if err := SetUser(ctx, u, time.Minute); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	got, err := GetUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.UserID != 42 || got.Login != "neo" || got.Rating != 3 {
		t.Fatalf("cached user = %+v", got)
	}
	if got.PasswordHash != "" {
		t.Fatal("password hash leaked into cache")
	}

	if err = DelUser(ctx, 42, 43); err != nil {
		t.Fatalf("DelUser: %v", err)
	}
	if mr.Exists("usof:cache:user:42") {
		t.Fatal("user cache not evicted")
	}
}

func TestCategoryListCache(t *testing.T) {
	_, ctx := setupRedis(t)

	list := []*models.Category{{ID: 1, Title: "Go", Slug: "go"}, {ID: 2, Title: "Rust", Slug: "rust"}}
	if err := SetCategoryList(ctx, list, time.Minute); err != nil {
		t.Fatalf("SetCategoryList: %v", err)
	}
	got, err := GetCategoryList(ctx)
	if err != nil || len(got) != 2 || got[1].Slug != "rust" {
		t.Fatalf("GetCategoryList = %+v, %v", got, err)
	}
	if err = DelCategoryList(ctx); err != nil {
		t.Fatalf("DelCategoryList: %v", err)
	}
	if _, err = GetCategoryList(ctx); !errors.Is(err, errno.ErrorCacheMiss) {
		t.Fatalf("after evict err = %v", err)
	}
}
