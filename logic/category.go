package logic

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"usof/dao/mysql"
	"usof/dao/redis"
	"usof/models"
	"usof/pkg/errno"
	"usof/pkg/errorx"
	"usof/pkg/snowflake"

	"go.uber.org/zap"
)

const categoryCacheTTL = 10 * time.Minute

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 转小写，连续的非 [a-z0-9] 字符替换为 "-"，去掉首尾的 "-"
func Slugify(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// GetCategoryList 分类列表变化很少，走 redis 缓存
func GetCategoryList(ctx context.Context) ([]*models.Category, error) {
	list, err := redis.GetCategoryList(ctx)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, errno.ErrorCacheMiss) {
		zap.L().Warn("redis.GetCategoryList failed", zap.Error(err))
	}

	list, err = mysql.GetCategoryList(ctx)
	if err != nil {
		zap.L().Error("mysql.GetCategoryList failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err = redis.SetCategoryList(ctx, list, categoryCacheTTL); err != nil {
		zap.L().Warn("redis.SetCategoryList failed", zap.Error(err))
	}
	return list, nil
}

func GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := mysql.GetCategoryByID(ctx, id)
	if err != nil {
		zap.L().Error("mysql.GetCategoryByID failed", zap.Int64("category_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if c == nil {
		return nil, errorx.ErrCategoryNotExist
	}
	return c, nil
}

// GetCategoryPosts 某分类下的帖子，默认按时间倒序；状态过滤规则与帖子列表一致
func GetCategoryPosts(ctx context.Context, viewer models.Viewer, id int64, status string) ([]*models.ApiPostDetail, error) {
	if _, err := GetCategory(ctx, id); err != nil {
		return nil, err
	}
	return listCategoryPosts(ctx, viewer, id, status)
}

func listCategoryPosts(ctx context.Context, viewer models.Viewer, id int64, status string) ([]*models.ApiPostDetail, error) {
	st, ownOnly := effectiveStatus(viewer, status)
	q := &mysql.PostQuery{
		Sort:        mysql.SortDate,
		Desc:        true,
		Status:      st,
		CategoryIDs: []int64{id},
	}
	if ownOnly {
		if viewer.IsAnonymous() {
			return []*models.ApiPostDetail{}, nil
		}
		q.AuthorID = viewer.UserID
	}
	posts, _, err := mysql.ListPosts(ctx, q)
	if err != nil {
		zap.L().Error("mysql.ListPosts by category failed", zap.Int64("category_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return decoratePosts(ctx, posts)
}

func CreateCategory(ctx context.Context, p *models.ParamCategoryCreate) (*models.Category, error) {
	c := &models.Category{
		ID:          snowflake.GenID(),
		Title:       strings.TrimSpace(p.Title),
		Slug:        Slugify(p.Title),
		Description: p.Description,
	}
	if err := mysql.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, errno.ErrorCategoryExist) {
			return nil, errorx.ErrCategoryExist
		}
		zap.L().Error("mysql.CreateCategory failed", zap.String("title", c.Title), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	evictCategories(ctx)
	return c, nil
}

// UpdateCategory 改标题时同步更新 slug
func UpdateCategory(ctx context.Context, id int64, p *models.ParamCategoryUpdate) (*models.Category, error) {
	if _, err := GetCategory(ctx, id); err != nil {
		return nil, err
	}
	fields := make(map[string]interface{})
	if p.Title != nil {
		fields["title"] = strings.TrimSpace(*p.Title)
		fields["slug"] = Slugify(*p.Title)
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if len(fields) == 0 {
		return nil, errorx.ErrNothingToUpdate
	}
	if err := mysql.UpdateCategory(ctx, id, fields); err != nil {
		if errors.Is(err, errno.ErrorCategoryExist) {
			return nil, errorx.ErrCategoryExist
		}
		zap.L().Error("mysql.UpdateCategory failed", zap.Int64("category_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	evictCategories(ctx)
	return GetCategory(ctx, id)
}

func DeleteCategory(ctx context.Context, id int64) error {
	if err := mysql.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, errno.ErrorRecordNotExist) {
			return errorx.ErrCategoryNotExist
		}
		zap.L().Error("mysql.DeleteCategory failed", zap.Int64("category_id", id), zap.Error(err))
		return errorx.ErrServerBusy
	}
	evictCategories(ctx)
	return nil
}

func evictCategories(ctx context.Context) {
	if err := redis.DelCategoryList(ctx); err != nil {
		zap.L().Warn("redis.DelCategoryList failed", zap.Error(err))
	}
}
