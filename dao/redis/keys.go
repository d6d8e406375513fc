package redis

import "strconv"

// redis key 统一加前缀，值里用到的 ID 都是十进制字符串
const (
	KeyPrefix           = "usof:"
	KeyUserAccessToken  = "active_access_token:"  // usof:active_access_token:1001
	KeyUserRefreshToken = "active_refresh_token:" // usof:active_refresh_token:1001
	KeyUserCache        = "cache:user:"           // usof:cache:user:1001
	KeyCategoryList     = "cache:category:list"
)

func getRedisKey(key string) string {
	return KeyPrefix + key
}

func userKey(prefix string, userID int64) string {
	return getRedisKey(prefix + strconv.FormatInt(userID, 10))
}
