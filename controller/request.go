package controller

import (
	"errors"
	"strconv"

	"usof/models"

	"github.com/gin-gonic/gin"
)

var ErrorUserNotLogin = errors.New("用户未登录")

// GetCurrentUser 从 Gin 上下文中获取当前登录的用户ID
func GetCurrentUser(c *gin.Context) (userID int64, err error) {
	uid, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, ErrorUserNotLogin
	}
	userID, ok = uid.(int64)
	if !ok || userID == 0 {
		return 0, ErrorUserNotLogin
	}
	return userID, nil
}

// GetViewer 当前访问者，未登录时返回匿名访问者
func GetViewer(c *gin.Context) models.Viewer {
	uid, err := GetCurrentUser(c)
	if err != nil {
		return models.Viewer{}
	}
	return models.Viewer{UserID: uid, Role: c.GetString(CtxUserRoleKey)}
}

// parseID 读取路径参数中的正整数 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
