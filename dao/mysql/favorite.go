package mysql

import (
	"context"
	"errors"
	"fmt"

	"usof/models"
	"usof/pkg/errno"

	"gorm.io/gorm"
)

// AddFavorite 重复收藏返回 errno.ErrorFavoriteExist
func AddFavorite(ctx context.Context, userID, postID int64) error {
	err := db.WithContext(ctx).Create(&models.Favorite{UserID: userID, PostID: postID}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ErrorFavoriteExist
		}
		return fmt.Errorf("insert favorite failed: %w", err)
	}
	return nil
}

// RemoveFavorite 未收藏时返回 errno.ErrorFavoriteNotExist
func RemoveFavorite(ctx context.Context, userID, postID int64) error {
	res := db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.ErrorFavoriteNotExist
	}
	return nil
}

// ListFavoritePosts 用户收藏的帖子，按收藏时间倒序
func ListFavoritePosts(ctx context.Context, userID int64) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := db.WithContext(ctx).Preload("Author").
		Joins("JOIN favorites ON favorites.post_id = posts.post_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.create_time DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite posts failed: %w", err)
	}
	return posts, nil
}
