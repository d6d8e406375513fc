package logic

import (
	"context"
	"errors"

	"usof/dao/mysql"
	"usof/models"
	"usof/pkg/errno"
	"usof/pkg/errorx"

	"go.uber.org/zap"
)

var errFavoriteInactive = errorx.ErrForbidden.WithMsg("不能收藏已关闭的帖子")

// AddFavorite 只能收藏可见且 active 的帖子
func AddFavorite(ctx context.Context, viewer models.Viewer, postID int64) error {
	post, err := loadPost(ctx, viewer, postID)
	if err != nil {
		return err
	}
	if !post.IsActive() {
		return errFavoriteInactive
	}
	if err = mysql.AddFavorite(ctx, viewer.UserID, postID); err != nil {
		if errors.Is(err, errno.ErrorFavoriteExist) {
			return errorx.ErrFavoriteExist
		}
		zap.L().Error("mysql.AddFavorite failed",
			zap.Int64("user_id", viewer.UserID),
			zap.Int64("post_id", postID),
			zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// RemoveFavorite 未收藏时返回 ErrFavoriteNotExist
func RemoveFavorite(ctx context.Context, viewer models.Viewer, postID int64) error {
	if err := mysql.RemoveFavorite(ctx, viewer.UserID, postID); err != nil {
		if errors.Is(err, errno.ErrorFavoriteNotExist) {
			return errorx.ErrFavoriteNotExist
		}
		zap.L().Error("mysql.RemoveFavorite failed",
			zap.Int64("user_id", viewer.UserID),
			zap.Int64("post_id", postID),
			zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
