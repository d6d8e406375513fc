package mysql

import (
	"context"
	"errors"
	"fmt"

	"usof/models"
	"usof/pkg/errno"

	"gorm.io/gorm"
)

// GetCategoryList 按标题升序
func GetCategoryList(ctx context.Context) ([]*models.Category, error) {
	data := make([]*models.Category, 0)
	if err := db.WithContext(ctx).Order("title ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("query category list failed: %w", err)
	}
	return data, nil
}

// GetCategoryByID 查不到返回 nil, nil
func GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	c := new(models.Category)
	if err := db.WithContext(ctx).Where("category_id = ?", id).First(c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query category failed: %w", err)
	}
	return c, nil
}

func CreateCategory(ctx context.Context, c *models.Category) error {
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ErrorCategoryExist
		}
		return fmt.Errorf("insert category failed: %w", err)
	}
	return nil
}

func UpdateCategory(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Model(&models.Category{}).Where("category_id = ?", id).Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ErrorCategoryExist
		}
		return fmt.Errorf("update category failed: %w", err)
	}
	return nil
}

// DeleteCategory 同时删除帖子与该分类的关联
func DeleteCategory(ctx context.Context, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return fmt.Errorf("delete category links failed: %w", err)
		}
		res := tx.Where("category_id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return fmt.Errorf("delete category failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errno.ErrorRecordNotExist
		}
		return nil
	})
}

// GetCategoriesByPostIDs 返回 post_id -> 分类列表
func GetCategoriesByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*models.Category, error) {
	out := make(map[int64][]*models.Category, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID int64
		models.Category
	}
	rows := make([]*row, 0)
	err := db.WithContext(ctx).Table("post_categories AS pc").
		Select("pc.post_id AS post_id, c.category_id, c.title, c.slug, c.description, c.create_time, c.update_time").
		Joins("JOIN categories AS c ON c.category_id = pc.category_id").
		Where("pc.post_id IN ?", postIDs).
		Order("c.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query categories by posts failed: %w", err)
	}
	for _, r := range rows {
		c := r.Category
		out[r.PostID] = append(out[r.PostID], &c)
	}
	return out, nil
}

// existingCategoryIDs 过滤掉不存在的分类 ID，保持输入顺序并去重
func existingCategoryIDs(tx *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := tx.Model(&models.Category{}).Where("category_id IN ?", ids).
		Pluck("category_id", &found).Error; err != nil {
		return nil, fmt.Errorf("query category ids failed: %w", err)
	}
	present := make(map[int64]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	out := make([]int64, 0, len(found))
	for _, id := range ids {
		if present[id] {
			out = append(out, id)
			present[id] = false
		}
	}
	return out, nil
}
