package controller

import (
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 各表行数
// @Summary 后台概览(管理员)
// @Tags 管理后台
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Success 200 {object} ResponseData{data=mysql.Dashboard}
// @Router /admin/dashboard [get]
// @Security ApiKeyAuth
func DashboardHandler(c *gin.Context) {
	data, err := logic.GetDashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// AdminPostListHandler 后台帖子列表，默认不限状态
func AdminPostListHandler(c *gin.Context) {
	p := new(models.ParamPostList)
	if err := c.ShouldBindQuery(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.AdminListPosts(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

func AdminCommentListHandler(c *gin.Context) {
	data, err := logic.AdminListComments(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// AdminSetPostStatusHandler 切换帖子状态，计数和评分保持不变
// @Summary 修改帖子状态(管理员)
// @Tags 管理后台
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Param object body models.ParamStatus true "状态"
// @Success 200 {object} ResponseData{data=models.ApiPostDetail}
// @Router /admin/posts/{id}/status [patch]
// @Security ApiKeyAuth
func AdminSetPostStatusHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamStatus)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.SetPostStatus(c.Request.Context(), GetViewer(c), postID, p.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// RecomputeAllHandler 全量重算所有计数和评分
// @Summary 重算计数与评分(管理员)
// @Tags 管理后台
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Success 200 {object} ResponseData
// @Router /admin/recompute [post]
// @Security ApiKeyAuth
func RecomputeAllHandler(c *gin.Context) {
	elapsed, err := logic.RecomputeAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, gin.H{"elapsed_ms": elapsed.Milliseconds()})
}
