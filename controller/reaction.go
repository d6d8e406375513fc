package controller

import (
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// 帖子和评论共用同一组反应接口，kind 决定目标类型

func reactionTarget(c *gin.Context, kind string) (models.ReactionTarget, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return models.ReactionTarget{}, false
	}
	return models.ReactionTarget{Kind: kind, ID: id}, true
}

// bindReactionType 请求体可省略，省略时为 like
func bindReactionType(c *gin.Context) (string, bool) {
	p := new(models.ParamReaction)
	if c.Request.ContentLength == 0 {
		return models.ReactionLike, true
	}
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return "", false
	}
	if p.Type == "" {
		p.Type = models.ReactionLike
	}
	return p.Type, true
}

// ListReactionsHandler 目标上的全部反应
// @Summary 反应列表
// @Tags 反应相关
// @Produce application/json
// @Param id path string true "帖子或评论ID"
// @Success 200 {object} ResponseData{data=[]models.Reaction}
// @Router /posts/{id}/like [get]
func ListReactionsHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, ok := reactionTarget(c, kind)
		if !ok {
			return
		}
		data, err := logic.ListReactions(c.Request.Context(), GetViewer(c), target)
		if err != nil {
			HandleError(c, err)
			return
		}
		ResponseSuccess(c, data)
	}
}

// SetReactionHandler 点赞或点踩，已有反应时返回 409
// @Summary 点赞/点踩
// @Tags 反应相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子或评论ID"
// @Param object body models.ParamReaction false "反应类型，默认 like"
// @Success 201 {object} ResponseData{data=models.ReactionResult}
// @Failure 409 {object} ResponseData
// @Router /posts/{id}/like [post]
// @Security ApiKeyAuth
func SetReactionHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, ok := reactionTarget(c, kind)
		if !ok {
			return
		}
		typ, ok := bindReactionType(c)
		if !ok {
			return
		}
		data, err := logic.SetReaction(c.Request.Context(), GetViewer(c), target, typ)
		if err != nil {
			HandleError(c, err)
			return
		}
		ResponseCreated(c, data)
	}
}

// SwitchReactionHandler 切换已有反应的类型
// @Summary 切换反应
// @Tags 反应相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子或评论ID"
// @Param object body models.ParamReaction true "新的反应类型"
// @Success 200 {object} ResponseData{data=models.ReactionResult}
// @Router /posts/{id}/like [put]
// @Security ApiKeyAuth
func SwitchReactionHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, ok := reactionTarget(c, kind)
		if !ok {
			return
		}
		typ, ok := bindReactionType(c)
		if !ok {
			return
		}
		data, err := logic.SwitchReaction(c.Request.Context(), GetViewer(c), target, typ)
		if err != nil {
			HandleError(c, err)
			return
		}
		ResponseSuccess(c, data)
	}
}

// ClearReactionHandler 撤销反应，不存在时返回 404
// @Summary 撤销反应
// @Tags 反应相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子或评论ID"
// @Success 200 {object} ResponseData{data=models.ReactionResult}
// @Failure 404 {object} ResponseData
// @Router /posts/{id}/like [delete]
// @Security ApiKeyAuth
func ClearReactionHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target, ok := reactionTarget(c, kind)
		if !ok {
			return
		}
		data, err := logic.ClearReaction(c.Request.Context(), GetViewer(c), target)
		if err != nil {
			HandleError(c, err)
			return
		}
		ResponseSuccess(c, data)
	}
}
