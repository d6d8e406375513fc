package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usof/pkg/errno"

	"github.com/redis/go-redis/v9"
)

// SetUserToken 保存当前有效的 access / refresh token，单点登录校验时比对
func SetUserToken(ctx context.Context, userID int64, aToken, rToken string, aExp, rExp time.Duration) error {
	pipe := rdb.TxPipeline()
	pipe.Set(ctx, userKey(KeyUserAccessToken, userID), aToken, aExp)
	pipe.Set(ctx, userKey(KeyUserRefreshToken, userID), rToken, rExp)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set user token pipeline exec failed (user_id: %d): %w", userID, err)
	}
	return nil
}

// GetUserAccessToken 不存在时返回 errno.ErrorCacheMiss
func GetUserAccessToken(ctx context.Context, userID int64) (string, error) {
	return getString(ctx, userKey(KeyUserAccessToken, userID))
}

// GetUserRefreshToken 不存在时返回 errno.ErrorCacheMiss
func GetUserRefreshToken(ctx context.Context, userID int64) (string, error) {
	return getString(ctx, userKey(KeyUserRefreshToken, userID))
}

// DeleteUserToken 登出或改密后调用
func DeleteUserToken(ctx context.Context, userID int64) error {
	err := rdb.Del(ctx,
		userKey(KeyUserAccessToken, userID),
		userKey(KeyUserRefreshToken, userID),
	).Err()
	if err != nil {
		return fmt.Errorf("delete user token failed (user_id: %d): %w", userID, err)
	}
	return nil
}

func getString(ctx context.Context, key string) (string, error) {
	v, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errno.ErrorCacheMiss
		}
		return "", fmt.Errorf("redis get %s failed: %w", key, err)
	}
	return v, nil
}
