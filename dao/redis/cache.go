package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"usof/models"
)

// 读穿缓存：未命中返回 errno.ErrorCacheMiss，调用方回源数据库后 Set
// 缓存的 User 不含密码哈希，不能用于登录校验

func GetUser(ctx context.Context, userID int64) (*models.User, error) {
	raw, err := getString(ctx, userKey(KeyUserCache, userID))
	if err != nil {
		return nil, err
	}
	u := new(models.User)
	if err = json.Unmarshal([]byte(raw), u); err != nil {
		return nil, fmt.Errorf("decode cached user failed (user_id: %d): %w", userID, err)
	}
	return u, nil
}

func SetUser(ctx context.Context, u *models.User, ttl time.Duration) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user failed: %w", err)
	}
	if err = rdb.Set(ctx, userKey(KeyUserCache, u.UserID), b, ttl).Err(); err != nil {
		return fmt.Errorf("cache user failed (user_id: %d): %w", u.UserID, err)
	}
	return nil
}

// DelUser 用户资料、评分变更后失效
func DelUser(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, userKey(KeyUserCache, id))
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("evict cached users failed: %w", err)
	}
	return nil
}

func GetCategoryList(ctx context.Context) ([]*models.Category, error) {
	raw, err := getString(ctx, getRedisKey(KeyCategoryList))
	if err != nil {
		return nil, err
	}
	var list []*models.Category
	if err = json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode cached categories failed: %w", err)
	}
	return list, nil
}

func SetCategoryList(ctx context.Context, list []*models.Category, ttl time.Duration) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode categories failed: %w", err)
	}
	if err = rdb.Set(ctx, getRedisKey(KeyCategoryList), b, ttl).Err(); err != nil {
		return fmt.Errorf("cache categories failed: %w", err)
	}
	return nil
}

// DelCategoryList 分类增删改后失效
func DelCategoryList(ctx context.Context) error {
	if err := rdb.Del(ctx, getRedisKey(KeyCategoryList)).Err(); err != nil {
		return fmt.Errorf("evict cached categories failed: %w", err)
	}
	return nil
}
