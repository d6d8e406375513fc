package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usof/models"

	"gorm.io/gorm"
)

// 排序字段
const (
	SortLikes = "likes"
	SortDate  = "date"
)

// PostQuery 帖子列表过滤条件
// Status 为空表示不过滤状态；Limit 为 0 表示不分页
type PostQuery struct {
	Page          int
	Limit         int
	Sort          string
	Desc          bool
	Status        string
	AuthorID      int64
	FavoriteOf    int64
	CategoryIDs   []int64
	CategoryTitle string
	From          *time.Time
	To            *time.Time
}

// CreatePost 插入帖子并关联已存在的分类，未知分类 ID 忽略
func CreatePost(ctx context.Context, post *models.Post, categoryIDs []int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("insert post failed: %w", err)
		}
		return attachCategories(tx, post.ID, categoryIDs)
	})
}

func attachCategories(tx *gorm.DB, postID int64, categoryIDs []int64) error {
	ids, err := existingCategoryIDs(tx, categoryIDs)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	links := make([]*models.PostCategory, 0, len(ids))
	for _, cid := range ids {
		links = append(links, &models.PostCategory{PostID: postID, CategoryID: cid})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("insert post categories failed: %w", err)
	}
	return nil
}

// GetPostByID 预加载作者，查不到返回 nil, nil
func GetPostByID(ctx context.Context, pid int64) (*models.Post, error) {
	post := new(models.Post)
	err := db.WithContext(ctx).Preload("Author").Where("post_id = ?", pid).First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return post, nil
}

// UpdatePost 更新列；categoryIDs 非 nil 时在同一事务中整体替换分类
func UpdatePost(ctx context.Context, pid int64, fields map[string]interface{}, categoryIDs *[]int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&models.Post{}).Where("post_id = ?", pid).Updates(fields).Error; err != nil {
				return fmt.Errorf("update post failed: %w", err)
			}
		}
		if categoryIDs == nil {
			return nil
		}
		if err := tx.Where("post_id = ?", pid).Delete(&models.PostCategory{}).Error; err != nil {
			return fmt.Errorf("detach post categories failed: %w", err)
		}
		return attachCategories(tx, pid, *categoryIDs)
	})
}

func (q *PostQuery) build(tx *gorm.DB) *gorm.DB {
	tx = tx.Model(&models.Post{})
	if q.Status != "" && q.Status != models.StatusAll {
		tx = tx.Where("posts.status = ?", q.Status)
	}
	if q.AuthorID != 0 {
		tx = tx.Where("posts.author_id = ?", q.AuthorID)
	}
	if q.FavoriteOf != 0 {
		sub := db.Model(&models.Favorite{}).Select("post_id").Where("user_id = ?", q.FavoriteOf)
		tx = tx.Where("posts.post_id IN (?)", sub)
	}
	if len(q.CategoryIDs) > 0 {
		sub := db.Model(&models.PostCategory{}).Select("post_id").Where("category_id IN ?", q.CategoryIDs)
		tx = tx.Where("posts.post_id IN (?)", sub)
	}
	if q.CategoryTitle != "" {
		sub := db.Table("post_categories AS pc").Select("pc.post_id").
			Joins("JOIN categories AS c ON c.category_id = pc.category_id").
			Where("c.title = ?", q.CategoryTitle)
		tx = tx.Where("posts.post_id IN (?)", sub)
	}
	if q.From != nil {
		tx = tx.Where("posts.create_time >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("posts.create_time <= ?", *q.To)
	}
	return tx
}

func (q *PostQuery) orderBy() string {
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	if q.Sort == SortLikes {
		return fmt.Sprintf("posts.likes_count %s, posts.create_time %s, posts.post_id %s", dir, dir, dir)
	}
	return fmt.Sprintf("posts.create_time %s, posts.post_id %s", dir, dir)
}

// ListPosts 按条件分页查询，返回当前页和总数
func ListPosts(ctx context.Context, q *PostQuery) (posts []*models.Post, total int64, err error) {
	base := db.WithContext(ctx)
	if err = q.build(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts failed: %w", err)
	}

	tx := q.build(base.Session(&gorm.Session{})).Preload("Author").Order(q.orderBy())
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * q.Limit).Limit(q.Limit)
	}
	posts = make([]*models.Post, 0)
	if err = tx.Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, total, nil
}

// GetPostsByIDs 结果按 ids 顺序排列
func GetPostsByIDs(ctx context.Context, ids []int64) ([]*models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, len(ids))
	if err := db.WithContext(ctx).Preload("Author").Where("post_id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("query posts by ids failed: %w", err)
	}
	postMap := make(map[int64]*models.Post, len(posts))
	for _, p := range posts {
		postMap[p.ID] = p
	}
	ordered := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := postMap[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// SearchPosts 标题或正文模糊匹配，只查 active 帖子
func SearchPosts(ctx context.Context, keyword string, limit int) ([]*models.Post, error) {
	like := "%" + keyword + "%"
	posts := make([]*models.Post, 0)
	err := db.WithContext(ctx).Preload("Author").
		Where("status = ?", models.StatusActive).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("create_time DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("search posts failed: %w", err)
	}
	return posts, nil
}
