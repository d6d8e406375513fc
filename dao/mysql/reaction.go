package mysql

import (
	"context"
	"errors"
	"fmt"

	"usof/models"
	"usof/pkg/errno"

	"gorm.io/gorm"
)

// SetReaction 记录一次反应，并在同一事务中重算目标计数与目标作者评分
// 已有任何反应（无论类型）时返回 errno.ErrorReactionExist
// 唯一索引兜底并发插入，重复键同样视为冲突
func SetReaction(ctx context.Context, r *models.Reaction, targetAuthorID int64) (*models.ReactionResult, error) {
	res := &models.ReactionResult{Reaction: r}
	target := models.ReactionTarget{Kind: r.TargetType, ID: r.TargetID}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findReaction(tx, r.AuthorID, target)
		if err != nil {
			return err
		}
		if existing != nil {
			return errno.ErrorReactionExist
		}
		if err = tx.Create(r).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errno.ErrorReactionExist
			}
			return fmt.Errorf("insert reaction failed: %w", err)
		}
		return refreshDerived(tx, target, targetAuthorID, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ClearReaction 删除 actor 对目标的反应，不存在时返回 errno.ErrorReactionNotExist 且不做任何修改
func ClearReaction(ctx context.Context, actorID int64, target models.ReactionTarget, targetAuthorID int64) (*models.ReactionResult, error) {
	res := new(models.ReactionResult)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findReaction(tx, actorID, target)
		if err != nil {
			return err
		}
		if existing == nil {
			return errno.ErrorReactionNotExist
		}
		del := tx.Where("reaction_id = ?", existing.ID).Delete(&models.Reaction{})
		if del.Error != nil {
			return fmt.Errorf("delete reaction failed: %w", del.Error)
		}
		if del.RowsAffected == 0 {
			return errno.ErrorReactionNotExist
		}
		res.Reaction = existing
		return refreshDerived(tx, target, targetAuthorID, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetReaction 查不到返回 nil, nil
func GetReaction(ctx context.Context, actorID int64, target models.ReactionTarget) (*models.Reaction, error) {
	return findReaction(db.WithContext(ctx), actorID, target)
}

// ListReactions 目标上的全部反应，按时间倒序
func ListReactions(ctx context.Context, target models.ReactionTarget) ([]*models.Reaction, error) {
	data := make([]*models.Reaction, 0)
	err := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Order("create_time DESC").
		Find(&data).Error
	if err != nil {
		return nil, fmt.Errorf("list reactions failed: %w", err)
	}
	return data, nil
}

func findReaction(tx *gorm.DB, actorID int64, target models.ReactionTarget) (*models.Reaction, error) {
	r := new(models.Reaction)
	err := tx.Where("author_id = ? AND target_type = ? AND target_id = ?", actorID, target.Kind, target.ID).
		First(r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query reaction failed: %w", err)
	}
	return r, nil
}

func refreshDerived(tx *gorm.DB, target models.ReactionTarget, authorID int64, res *models.ReactionResult) error {
	counters, err := recountTarget(tx, target)
	if err != nil {
		return err
	}
	rating, err := recomputeRating(tx, authorID)
	if err != nil {
		return err
	}
	res.Counters = counters
	res.AuthorRating = rating
	return nil
}

func targetTable(kind string) (table, pk string, err error) {
	switch kind {
	case models.TargetPost:
		return "posts", "post_id", nil
	case models.TargetComment:
		return "comments", "comment_id", nil
	default:
		return "", "", fmt.Errorf("%w: target kind %q", errno.ErrorInvalidID, kind)
	}
}

// recountTarget 全量统计目标上的 like / dislike 并写回冗余计数
func recountTarget(tx *gorm.DB, target models.ReactionTarget) (models.Counters, error) {
	var c models.Counters
	table, pk, err := targetTable(target.Kind)
	if err != nil {
		return c, err
	}
	err = tx.Raw(`SELECT
		COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS likes,
		COALESCE(SUM(CASE WHEN type = ? THEN 1 ELSE 0 END), 0) AS dislikes
		FROM likes WHERE target_type = ? AND target_id = ?`,
		models.ReactionLike, models.ReactionDislike, target.Kind, target.ID,
	).Scan(&c).Error
	if err != nil {
		return c, fmt.Errorf("count reactions (%s %d) failed: %w", target.Kind, target.ID, err)
	}
	err = tx.Table(table).Where(pk+" = ?", target.ID).UpdateColumns(map[string]interface{}{
		"likes_count":    c.Likes,
		"dislikes_count": c.Dislikes,
	}).Error
	if err != nil {
		return c, fmt.Errorf("save counters (%s %d) failed: %w", target.Kind, target.ID, err)
	}
	return c, nil
}
