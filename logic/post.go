package logic

import (
	"context"
	"time"

	"usof/dao/es"
	"usof/dao/mysql"
	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/markdown"
	"usof/pkg/snowflake"

	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// canSeePost 关闭的帖子只对作者和管理员可见
func canSeePost(viewer models.Viewer, p *models.Post) bool {
	if p.IsActive() || viewer.IsAdmin() {
		return true
	}
	return !viewer.IsAnonymous() && viewer.UserID == p.AuthorID
}

// effectiveStatus 非管理员：all 退化为 active，inactive 只能看自己的
func effectiveStatus(viewer models.Viewer, requested string) (status string, ownOnly bool) {
	if requested == "" {
		requested = models.StatusActive
	}
	if viewer.IsAdmin() {
		return requested, false
	}
	switch requested {
	case models.StatusInactive:
		return models.StatusInactive, true
	default:
		return models.StatusActive, false
	}
}

// parseDate 接受 2006-01-02 或 RFC3339；endOfDay 为 true 时日期取当天结束
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, errorx.ErrInvalidParam.WithMsg("日期格式应为 YYYY-MM-DD: " + s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// buildPostQuery 把请求参数翻译成查询条件；empty 为 true 表示结果必然为空
func buildPostQuery(viewer models.Viewer, p *models.ParamPostList) (q *mysql.PostQuery, empty bool, err error) {
	q = &mysql.PostQuery{
		Page:  p.Page,
		Limit: p.Limit,
		Sort:  defaultString(p.Sort, mysql.SortDate),
		Desc:  p.Order != "asc",
	}
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}

	status, ownOnly := effectiveStatus(viewer, p.Status)
	q.Status = status
	if ownOnly {
		if viewer.IsAnonymous() {
			return q, true, nil
		}
		q.AuthorID = viewer.UserID
	}

	if p.Categories != "" {
		if ids, ok := models.ParseIDList(p.Categories); ok {
			q.CategoryIDs = ids
		} else {
			q.CategoryTitle = p.Categories
		}
	}
	if q.From, err = parseDate(p.From, false); err != nil {
		return nil, false, err
	}
	if q.To, err = parseDate(p.To, true); err != nil {
		return nil, false, err
	}
	if p.Favorite {
		if viewer.IsAnonymous() {
			return nil, false, errorx.ErrNeedLogin
		}
		q.FavoriteOf = viewer.UserID
	}
	return q, false, nil
}

// ListPosts 帖子列表，分页、排序、过滤都在数据库完成
func ListPosts(ctx context.Context, viewer models.Viewer, p *models.ParamPostList) (*models.PostPage, error) {
	q, empty, err := buildPostQuery(viewer, p)
	if err != nil {
		return nil, err
	}
	if empty {
		return &models.PostPage{Page: q.Page, Limit: q.Limit, Items: []*models.ApiPostDetail{}}, nil
	}
	return queryPostPage(ctx, q)
}

func queryPostPage(ctx context.Context, q *mysql.PostQuery) (*models.PostPage, error) {
	posts, total, err := mysql.ListPosts(ctx, q)
	if err != nil {
		zap.L().Error("mysql.ListPosts failed", zap.Any("query", q), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	items, err := decoratePosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	return &models.PostPage{Total: total, Page: page, Limit: q.Limit, Items: items}, nil
}

// decoratePosts 批量补充分类并渲染 markdown
func decoratePosts(ctx context.Context, posts []*models.Post) ([]*models.ApiPostDetail, error) {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	cats, err := mysql.GetCategoriesByPostIDs(ctx, ids)
	if err != nil {
		zap.L().Error("mysql.GetCategoriesByPostIDs failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	data := make([]*models.ApiPostDetail, 0, len(posts))
	for _, p := range posts {
		categories := cats[p.ID]
		if categories == nil {
			categories = []*models.Category{}
		}
		data = append(data, &models.ApiPostDetail{
			Post:        p,
			ContentHTML: markdown.Render(p.Content),
			Categories:  categories,
		})
	}
	return data, nil
}

// loadPost 帖子不存在或对访问者不可见时统一返回 ErrPostNotExist
func loadPost(ctx context.Context, viewer models.Viewer, pid int64) (*models.Post, error) {
	post, err := mysql.GetPostByID(ctx, pid)
	if err != nil {
		zap.L().Error("mysql.GetPostByID failed", zap.Int64("post_id", pid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if post == nil || !canSeePost(viewer, post) {
		return nil, errorx.ErrPostNotExist
	}
	return post, nil
}

func GetPost(ctx context.Context, viewer models.Viewer, pid int64) (*models.ApiPostDetail, error) {
	post, err := loadPost(ctx, viewer, pid)
	if err != nil {
		return nil, err
	}
	data, err := decoratePosts(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return data[0], nil
}

// CreatePost 帖子与分类关联在同一事务写入，不存在的分类 ID 忽略
func CreatePost(ctx context.Context, viewer models.Viewer, p *models.ParamPostCreate) (*models.ApiPostDetail, error) {
	post := &models.Post{
		ID:       snowflake.GenID(),
		AuthorID: viewer.UserID,
		Title:    p.Title,
		Content:  p.Content,
		Status:   models.StatusActive,
	}
	if err := mysql.CreatePost(ctx, post, p.Categories); err != nil {
		zap.L().Error("mysql.CreatePost failed",
			zap.Int64("post_id", post.ID),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	syncSearchIndex(ctx, post.ID)
	return GetPost(ctx, viewer, post.ID)
}

// UpdatePost 修改帖子
// 业务规则:
//   1. 只有作者和管理员能修改
//   2. 正文只有作者本人能改，管理员改别人帖子的正文返回 ErrAdminEditContent
//   3. 状态只有管理员能改，计数和评分保持不变
//   4. 出现 categories 时在同一事务中整体替换分类关联
//   5. 修改后同步搜索索引
func UpdatePost(ctx context.Context, viewer models.Viewer, pid int64, p *models.ParamPostUpdate) (*models.ApiPostDetail, error) {
	post, err := loadPost(ctx, viewer, pid)
	if err != nil {
		return nil, err
	}
	owner := viewer.UserID == post.AuthorID
	if !owner && !viewer.IsAdmin() {
		return nil, errorx.ErrForbidden
	}
	if p.Content != nil && !owner {
		return nil, errorx.ErrAdminEditContent
	}
	if p.Status != nil && !viewer.IsAdmin() {
		return nil, errorx.ErrAdminOnlyStatus
	}

	fields := make(map[string]interface{})
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Content != nil {
		fields["content"] = *p.Content
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	var categoryIDs *[]int64
	if p.Categories != nil {
		ids := []int64(*p.Categories)
		categoryIDs = &ids
	}
	if len(fields) == 0 && categoryIDs == nil {
		return nil, errorx.ErrNothingToUpdate
	}

	if err = mysql.UpdatePost(ctx, pid, fields, categoryIDs); err != nil {
		zap.L().Error("mysql.UpdatePost failed", zap.Int64("post_id", pid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	syncSearchIndex(ctx, pid)
	return GetPost(ctx, viewer, pid)
}

// SetPostStatus 管理员切换帖子状态，计数和评分保持不变
func SetPostStatus(ctx context.Context, viewer models.Viewer, pid int64, status string) (*models.ApiPostDetail, error) {
	return UpdatePost(ctx, viewer, pid, &models.ParamPostUpdate{Status: &status})
}

// DeletePost 作者或管理员硬删除，连带评论、反应、收藏
func DeletePost(ctx context.Context, viewer models.Viewer, pid int64) error {
	post, err := loadPost(ctx, viewer, pid)
	if err != nil {
		return err
	}
	if viewer.UserID != post.AuthorID && !viewer.IsAdmin() {
		return errorx.ErrForbidden
	}
	if err = mysql.DeletePost(ctx, pid); err != nil {
		zap.L().Error("mysql.DeletePost failed", zap.Int64("post_id", pid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err = es.DeletePost(ctx, pid); err != nil {
		zap.L().Warn("es.DeletePost failed", zap.Int64("post_id", pid), zap.Error(err))
	}
	evictUsers(ctx, post.AuthorID)
	return nil
}

func GetPostCategories(ctx context.Context, viewer models.Viewer, pid int64) ([]*models.Category, error) {
	if _, err := loadPost(ctx, viewer, pid); err != nil {
		return nil, err
	}
	cats, err := mysql.GetCategoriesByPostIDs(ctx, []int64{pid})
	if err != nil {
		zap.L().Error("mysql.GetCategoriesByPostIDs failed", zap.Int64("post_id", pid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if cats[pid] == nil {
		return []*models.Category{}, nil
	}
	return cats[pid], nil
}

// syncSearchIndex 把帖子最新状态写入搜索索引，失败不影响主流程
func syncSearchIndex(ctx context.Context, pid int64) {
	if !es.Enabled() {
		return
	}
	post, err := mysql.GetPostByID(ctx, pid)
	if err != nil || post == nil {
		zap.L().Warn("reload post for index failed", zap.Int64("post_id", pid), zap.Error(err))
		return
	}
	if err = es.IndexPost(ctx, post); err != nil {
		zap.L().Warn("es.IndexPost failed", zap.Int64("post_id", pid), zap.Error(err))
	}
}

// SearchPosts 启用 elasticsearch 时走全文检索，失败或未启用时回落到 LIKE
func SearchPosts(ctx context.Context, keyword string, limit int) ([]*models.ApiPostDetail, error) {
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	var posts []*models.Post
	if es.Enabled() {
		ids, err := es.SearchPosts(ctx, keyword, limit)
		if err == nil {
			posts, err = mysql.GetPostsByIDs(ctx, ids)
		}
		if err != nil {
			zap.L().Warn("search via elasticsearch failed, falling back to sql", zap.Error(err))
			posts = nil
		} else {
			// 索引可能落后于数据库
			active := posts[:0]
			for _, p := range posts {
				if p.IsActive() {
					active = append(active, p)
				}
			}
			return decoratePosts(ctx, active)
		}
	}
	posts, err := mysql.SearchPosts(ctx, keyword, limit)
	if err != nil {
		zap.L().Error("mysql.SearchPosts failed", zap.String("keyword", keyword), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return decoratePosts(ctx, posts)
}
