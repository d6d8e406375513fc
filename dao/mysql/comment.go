package mysql

import (
	"context"
	"errors"
	"fmt"

	"usof/models"

	"gorm.io/gorm"
)

func CreateComment(ctx context.Context, c *models.Comment) error {
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert comment failed: %w", err)
	}
	return nil
}

// GetCommentByID 查不到返回 nil, nil
func GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	c := new(models.Comment)
	err := db.WithContext(ctx).Preload("Author").Where("comment_id = ?", id).First(c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query comment by id failed: %w", err)
	}
	return c, nil
}

// ListCommentsByPost 帖子下全部评论，按创建时间升序
func ListCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	data := make([]*models.Comment, 0)
	err := db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("create_time ASC, comment_id ASC").
		Find(&data).Error
	if err != nil {
		return nil, fmt.Errorf("query comments by post failed: %w", err)
	}
	return data, nil
}

// ListComments 管理后台用，按创建时间倒序
func ListComments(ctx context.Context) ([]*models.Comment, error) {
	data := make([]*models.Comment, 0)
	if err := db.WithContext(ctx).Order("create_time DESC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return data, nil
}

// UpdateCommentStatus 只改状态，不动计数
func UpdateCommentStatus(ctx context.Context, id int64, status string) error {
	err := db.WithContext(ctx).Model(&models.Comment{}).Where("comment_id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("update comment status failed: %w", err)
	}
	return nil
}
