package controller

import (
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// CategoryListHandler 获取分类列表
// @Summary 分类列表
// @Description 按标题升序
// @Tags 分类相关
// @Produce application/json
// @Success 200 {object} ResponseData{data=[]models.Category}
// @Router /categories [get]
func CategoryListHandler(c *gin.Context) {
	data, err := logic.GetCategoryList(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CategoryDetailHandler 获取分类详情
// @Summary 分类详情
// @Tags 分类相关
// @Produce application/json
// @Param id path string true "分类ID"
// @Success 200 {object} ResponseData{data=models.Category}
// @Failure 404 {object} ResponseData
// @Router /categories/{id} [get]
func CategoryDetailHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetCategory(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CategoryPostsHandler 分类下的帖子，按时间倒序
// @Summary 分类下的帖子
// @Tags 分类相关
// @Produce application/json
// @Param id path string true "分类ID"
// @Param status query string false "active / inactive / all"
// @Success 200 {object} ResponseData{data=[]models.ApiPostDetail}
// @Router /categories/{id}/posts [get]
func CategoryPostsHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	status := c.Query("status")
	switch status {
	case "", models.StatusActive, models.StatusInactive, models.StatusAll:
	default:
		ResponseError(c, errorx.ErrInvalidParam.WithMsg("status 取值为 active / inactive / all"))
		return
	}
	data, err := logic.GetCategoryPosts(c.Request.Context(), GetViewer(c), id, status)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CreateCategoryHandler 管理员创建分类
// @Summary 创建分类(管理员)
// @Tags 分类相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param object body models.ParamCategoryCreate true "分类参数"
// @Success 201 {object} ResponseData{data=models.Category}
// @Failure 409 {object} ResponseData
// @Router /categories [post]
// @Security ApiKeyAuth
func CreateCategoryHandler(c *gin.Context) {
	p := new(models.ParamCategoryCreate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.CreateCategory(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, data)
}

// UpdateCategoryHandler 管理员修改分类，标题变化时 slug 一并更新
// @Summary 修改分类(管理员)
// @Tags 分类相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "分类ID"
// @Param object body models.ParamCategoryUpdate true "修改的字段"
// @Success 200 {object} ResponseData{data=models.Category}
// @Router /categories/{id} [patch]
// @Security ApiKeyAuth
func UpdateCategoryHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamCategoryUpdate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.UpdateCategory(c.Request.Context(), id, p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// DeleteCategoryHandler 管理员删除分类，帖子保留
// @Summary 删除分类(管理员)
// @Tags 分类相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "分类ID"
// @Success 200 {object} ResponseData
// @Router /categories/{id} [delete]
// @Security ApiKeyAuth
func DeleteCategoryHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.DeleteCategory(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}
