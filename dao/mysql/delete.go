package mysql

import (
	"context"
	"fmt"

	"usof/models"
	"usof/pkg/errno"

	"gorm.io/gorm"
)

// 硬删除会连带删除目标上的反应，受影响作者的评分在同一事务中重算

// DeletePost 删除帖子及其评论、反应、收藏和分类关联
func DeletePost(ctx context.Context, pid int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := deletePosts(tx, []int64{pid})
		if err != nil {
			return err
		}
		return recomputeRatings(tx, affected)
	})
}

// DeleteComment 删除评论及其反应；它的回复保留，读取时按孤儿提升为顶层
func DeleteComment(ctx context.Context, cid int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := deleteComments(tx, []int64{cid})
		if err != nil {
			return err
		}
		return recomputeRatings(tx, affected)
	})
}

// DeleteUser 删除用户及其全部内容、反应、收藏和令牌
// 该用户反应过的目标重新计数，目标作者重算评分
func DeleteUser(ctx context.Context, uid int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []int64
		if err := tx.Model(&models.Post{}).Where("author_id = ?", uid).Pluck("post_id", &postIDs).Error; err != nil {
			return fmt.Errorf("query user posts failed: %w", err)
		}
		affected, err := deletePosts(tx, postIDs)
		if err != nil {
			return err
		}

		var commentIDs []int64
		if err = tx.Model(&models.Comment{}).Where("author_id = ?", uid).Pluck("comment_id", &commentIDs).Error; err != nil {
			return fmt.Errorf("query user comments failed: %w", err)
		}
		more, err := deleteComments(tx, commentIDs)
		if err != nil {
			return err
		}
		affected = append(affected, more...)

		more, err = deleteReactionsBy(tx, uid)
		if err != nil {
			return err
		}
		affected = append(affected, more...)

		for _, m := range []interface{}{&models.Favorite{}, &models.EmailToken{}, &models.PasswordResetToken{}} {
			if err = tx.Where("user_id = ?", uid).Delete(m).Error; err != nil {
				return fmt.Errorf("delete user rows failed: %w", err)
			}
		}
		res := tx.Where("user_id = ?", uid).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errno.ErrorRecordNotExist
		}

		others := affected[:0]
		for _, id := range affected {
			if id != uid {
				others = append(others, id)
			}
		}
		return recomputeRatings(tx, others)
	})
}

// deletePosts 返回需要重算评分的用户
func deletePosts(tx *gorm.DB, postIDs []int64) ([]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var commentIDs []int64
	if err := tx.Model(&models.Comment{}).Where("post_id IN ?", postIDs).Pluck("comment_id", &commentIDs).Error; err != nil {
		return nil, fmt.Errorf("query post comments failed: %w", err)
	}
	affected, err := deleteComments(tx, commentIDs)
	if err != nil {
		return nil, err
	}

	var authors []int64
	if err = tx.Model(&models.Post{}).Where("post_id IN ?", postIDs).Distinct().Pluck("author_id", &authors).Error; err != nil {
		return nil, fmt.Errorf("query post authors failed: %w", err)
	}
	affected = append(affected, authors...)

	if err = tx.Where("target_type = ? AND target_id IN ?", models.TargetPost, postIDs).Delete(&models.Reaction{}).Error; err != nil {
		return nil, fmt.Errorf("delete post reactions failed: %w", err)
	}
	for _, m := range []interface{}{&models.Favorite{}, &models.PostCategory{}, &models.Post{}} {
		if err = tx.Where("post_id IN ?", postIDs).Delete(m).Error; err != nil {
			return nil, fmt.Errorf("delete post rows failed: %w", err)
		}
	}
	return affected, nil
}

func deleteComments(tx *gorm.DB, commentIDs []int64) ([]int64, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var authors []int64
	if err := tx.Model(&models.Comment{}).Where("comment_id IN ?", commentIDs).Distinct().Pluck("author_id", &authors).Error; err != nil {
		return nil, fmt.Errorf("query comment authors failed: %w", err)
	}
	if err := tx.Where("target_type = ? AND target_id IN ?", models.TargetComment, commentIDs).Delete(&models.Reaction{}).Error; err != nil {
		return nil, fmt.Errorf("delete comment reactions failed: %w", err)
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
		return nil, fmt.Errorf("delete comments failed: %w", err)
	}
	return authors, nil
}

// deleteReactionsBy 删除用户发出的全部反应，重算仍然存在的目标，返回目标作者
func deleteReactionsBy(tx *gorm.DB, uid int64) ([]int64, error) {
	var rs []*models.Reaction
	if err := tx.Where("author_id = ?", uid).Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("query user reactions failed: %w", err)
	}
	if len(rs) == 0 {
		return nil, nil
	}
	if err := tx.Where("author_id = ?", uid).Delete(&models.Reaction{}).Error; err != nil {
		return nil, fmt.Errorf("delete user reactions failed: %w", err)
	}

	var affected []int64
	for _, r := range rs {
		target := models.ReactionTarget{Kind: r.TargetType, ID: r.TargetID}
		if _, err := recountTarget(tx, target); err != nil {
			return nil, err
		}
		table, pk, err := targetTable(r.TargetType)
		if err != nil {
			return nil, err
		}
		var authors []int64
		if err = tx.Table(table).Where(pk+" = ?", r.TargetID).Pluck("author_id", &authors).Error; err != nil {
			return nil, fmt.Errorf("query target author failed: %w", err)
		}
		affected = append(affected, authors...)
	}
	return affected, nil
}
