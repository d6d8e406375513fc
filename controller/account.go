package controller

import (
	"strconv"

	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"
	"usof/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserListHandler 用户列表
// @Summary 用户列表
// @Tags 用户相关
// @Produce application/json
// @Success 200 {object} ResponseData{data=[]models.User}
// @Router /users [get]
func GetUserListHandler(c *gin.Context) {
	data, err := logic.GetUserList(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// GetUserHandler 用户详情
// @Summary 用户详情
// @Tags 用户相关
// @Produce application/json
// @Param id path string true "用户ID"
// @Success 200 {object} ResponseData{data=models.User}
// @Failure 404 {object} ResponseData
// @Router /users/{id} [get]
func GetUserHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetUser(c.Request.Context(), uid)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CreateUserHandler 管理员创建用户
// @Summary 创建用户(管理员)
// @Tags 用户相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param object body models.ParamUserCreate true "用户参数"
// @Success 201 {object} ResponseData{data=models.User}
// @Router /users [post]
// @Security ApiKeyAuth
func CreateUserHandler(c *gin.Context) {
	p := new(models.ParamUserCreate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	u, err := logic.CreateUser(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, u)
}

// UpdateUserHandler 修改资料，角色只有管理员能改
// @Summary 修改用户
// @Tags 用户相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "用户ID"
// @Param object body models.ParamUserUpdate true "修改的字段"
// @Success 200 {object} ResponseData{data=models.User}
// @Router /users/{id} [patch]
// @Security ApiKeyAuth
func UpdateUserHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamUserUpdate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	u, err := logic.UpdateUser(c.Request.Context(), GetViewer(c), uid, p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, u)
}

// DeleteUserHandler 注销用户，连带删除其内容
// @Summary 删除用户
// @Tags 用户相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "用户ID"
// @Success 200 {object} ResponseData
// @Router /users/{id} [delete]
// @Security ApiKeyAuth
func DeleteUserHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.DeleteUser(c.Request.Context(), GetViewer(c), uid); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}

// UploadAvatarHandler multipart 字段名 avatar
// @Summary 上传头像
// @Tags 用户相关
// @Accept multipart/form-data
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "用户ID"
// @Param avatar formData file true "头像图片"
// @Success 200 {object} ResponseData{data=models.User}
// @Router /users/{id}/avatar [patch]
// @Security ApiKeyAuth
func UploadAvatarHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		ResponseError(c, errorx.ErrInvalidParam.WithMsg("缺少头像文件"))
		return
	}
	if cfg := settings.Conf.Upload; cfg != nil && cfg.MaxBytes > 0 && fh.Size > cfg.MaxBytes {
		ResponseError(c, errorx.ErrInvalidParam.WithMsg("头像文件过大"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		zap.L().Error("open uploaded avatar failed", zap.Error(err))
		ResponseError(c, errorx.ErrServerBusy)
		return
	}
	defer f.Close()

	u, err := logic.UploadAvatar(c.Request.Context(), GetViewer(c), uid, f)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, u)
}

// GetUserFavoritesHandler 某用户收藏的帖子
// @Summary 用户收藏
// @Tags 用户相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "用户ID"
// @Success 200 {object} ResponseData{data=[]models.ApiPostDetail}
// @Router /users/{id}/favorites [get]
// @Security ApiKeyAuth
func GetUserFavoritesHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetUserFavorites(c.Request.Context(), GetViewer(c), uid)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// GetUserPostsHandler 某用户的帖子，不带 limit 时返回全部
// @Summary 用户的帖子
// @Tags 用户相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "用户ID"
// @Param object query models.ParamUserPosts false "分页与排序"
// @Success 200 {object} ResponseData{data=models.PostPage}
// @Router /users/{id}/posts [get]
// @Security ApiKeyAuth
func GetUserPostsHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamUserPosts)
	if err := c.ShouldBindQuery(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.GetUserPosts(c.Request.Context(), GetViewer(c), uid, p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// RecomputeRatingHandler 重算单个用户的评分
func RecomputeRatingHandler(c *gin.Context) {
	uid, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	rating, err := logic.RecomputeRating(c.Request.Context(), uid)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, gin.H{"user_id": strconv.FormatInt(uid, 10), "rating": rating})
}
