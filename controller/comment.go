package controller

import (
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GetPostCommentsHandler 帖子下的评论，tree=true 时返回两层树
// @Summary 帖子的评论
// @Tags 评论相关
// @Produce application/json
// @Param id path string true "帖子ID"
// @Param tree query bool false "是否组装成两层树"
// @Success 200 {object} ResponseData{data=models.CommentTree}
// @Router /posts/{id}/comments [get]
func GetPostCommentsHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	ctx, viewer := c.Request.Context(), GetViewer(c)
	if c.Query("tree") == "true" {
		tree, err := logic.GetCommentTree(ctx, viewer, postID)
		if err != nil {
			HandleError(c, err)
			return
		}
		ResponseSuccess(c, tree)
		return
	}
	data, err := logic.GetPostComments(ctx, viewer, postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CreateCommentHandler 发表评论
// @Summary 发表评论
// @Description parent_id 指向同帖评论时作为回复，回复的回复挂到顶层评论下
// @Tags 评论相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Param object body models.ParamCommentCreate true "评论参数"
// @Success 201 {object} ResponseData{data=models.CommentNode}
// @Router /posts/{id}/comments [post]
// @Security ApiKeyAuth
func CreateCommentHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamCommentCreate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.CreateComment(c.Request.Context(), GetViewer(c), postID, p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, data)
}

// GetCommentHandler 评论详情
// @Summary 评论详情
// @Tags 评论相关
// @Produce application/json
// @Param id path string true "评论ID"
// @Success 200 {object} ResponseData{data=models.CommentNode}
// @Router /comments/{id} [get]
func GetCommentHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetComment(c.Request.Context(), GetViewer(c), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// SetCommentStatusHandler 管理员可任意切换；作者只能关闭自己的评论
// @Summary 修改评论状态
// @Tags 评论相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "评论ID"
// @Param object body models.ParamStatus true "状态"
// @Success 200 {object} ResponseData{data=models.CommentNode}
// @Router /comments/{id} [patch]
// @Security ApiKeyAuth
func SetCommentStatusHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamStatus)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.SetCommentStatus(c.Request.Context(), GetViewer(c), id, p.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// DeleteCommentHandler 删除评论
// @Summary 删除评论
// @Tags 评论相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "评论ID"
// @Success 200 {object} ResponseData
// @Router /comments/{id} [delete]
// @Security ApiKeyAuth
func DeleteCommentHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.DeleteComment(c.Request.Context(), GetViewer(c), id); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}
