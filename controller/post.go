package controller

import (
	"strconv"

	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GetPostListHandler 帖子列表
// @Summary 帖子列表
// @Description 支持分页、按点赞数或时间排序、分类/日期/状态过滤，favorite=true 只看自己收藏的
// @Tags 帖子相关
// @Produce application/json
// @Param object query models.ParamPostList false "查询参数"
// @Success 200 {object} ResponseData{data=models.PostPage}
// @Router /posts [get]
func GetPostListHandler(c *gin.Context) {
	p := new(models.ParamPostList)
	if err := c.ShouldBindQuery(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.ListPosts(c.Request.Context(), GetViewer(c), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// GetPostDetailHandler 帖子详情，关闭的帖子只有作者和管理员可见
// @Summary 帖子详情
// @Tags 帖子相关
// @Produce application/json
// @Param id path string true "帖子ID"
// @Success 200 {object} ResponseData{data=models.ApiPostDetail}
// @Failure 404 {object} ResponseData
// @Router /posts/{id} [get]
func GetPostDetailHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetPost(c.Request.Context(), GetViewer(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// CreatePostHandler 创建帖子
// @Summary 创建帖子
// @Tags 帖子相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param object body models.ParamPostCreate true "帖子参数"
// @Success 201 {object} ResponseData{data=models.ApiPostDetail}
// @Router /posts [post]
// @Security ApiKeyAuth
func CreatePostHandler(c *gin.Context) {
	p := new(models.ParamPostCreate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.CreatePost(c.Request.Context(), GetViewer(c), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, data)
}

// UpdatePostHandler 修改帖子
// @Summary 修改帖子
// @Description 作者可改标题、正文、分类；管理员可改标题、状态、分类
// @Tags 帖子相关
// @Accept application/json
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Param object body models.ParamPostUpdate true "修改的字段"
// @Success 200 {object} ResponseData{data=models.ApiPostDetail}
// @Failure 403 {object} ResponseData
// @Router /posts/{id} [patch]
// @Security ApiKeyAuth
func UpdatePostHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	p := new(models.ParamPostUpdate)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.UpdatePost(c.Request.Context(), GetViewer(c), postID, p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// DeletePostHandler 删除帖子及其评论、反应、收藏
// @Summary 删除帖子
// @Tags 帖子相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Success 200 {object} ResponseData
// @Router /posts/{id} [delete]
// @Security ApiKeyAuth
func DeletePostHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.DeletePost(c.Request.Context(), GetViewer(c), postID); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}

// GetPostCategoriesHandler 帖子所属分类
// @Summary 帖子的分类
// @Tags 帖子相关
// @Produce application/json
// @Param id path string true "帖子ID"
// @Success 200 {object} ResponseData{data=[]models.Category}
// @Router /posts/{id}/categories [get]
func GetPostCategoriesHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := logic.GetPostCategories(c.Request.Context(), GetViewer(c), postID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if data == nil {
		data = []*models.Category{}
	}
	ResponseSuccess(c, data)
}

// SearchPostsHandler 全文搜索 active 帖子
// @Summary 搜索帖子
// @Tags 帖子相关
// @Produce application/json
// @Param q query string true "关键字"
// @Param limit query int false "条数上限"
// @Success 200 {object} ResponseData{data=[]models.ApiPostDetail}
// @Router /posts/search [get]
func SearchPostsHandler(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		ResponseError(c, errorx.ErrInvalidParam.WithMsg("缺少搜索关键字 q"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	data, err := logic.SearchPosts(c.Request.Context(), keyword, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// GetFeedHandler 多分类聚合
// @Summary 多分类聚合列表
// @Description match=any 取并集，match=all 取交集；页码超出范围时返回最后一页
// @Tags 帖子相关
// @Produce application/json
// @Param object query models.ParamFeed true "聚合参数"
// @Success 200 {object} ResponseData{data=models.PostPage}
// @Router /posts/feed [get]
func GetFeedHandler(c *gin.Context) {
	p := new(models.ParamFeed)
	if err := c.ShouldBindQuery(p); err != nil {
		handleBindError(c, err)
		return
	}
	data, err := logic.GetFeed(c.Request.Context(), GetViewer(c), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, data)
}

// AddFavoriteHandler 收藏帖子
// @Summary 收藏帖子
// @Tags 收藏相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Success 201 {object} ResponseData
// @Failure 409 {object} ResponseData
// @Router /posts/{id}/favorite [post]
// @Security ApiKeyAuth
func AddFavoriteHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.AddFavorite(c.Request.Context(), GetViewer(c), postID); err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, nil)
}

// RemoveFavoriteHandler 取消收藏
// @Summary 取消收藏
// @Tags 收藏相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Param id path string true "帖子ID"
// @Success 200 {object} ResponseData
// @Failure 404 {object} ResponseData
// @Router /posts/{id}/favorite [delete]
// @Security ApiKeyAuth
func RemoveFavoriteHandler(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	if err := logic.RemoveFavorite(c.Request.Context(), GetViewer(c), postID); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}
