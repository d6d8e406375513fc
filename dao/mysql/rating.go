package mysql

import (
	"context"
	"fmt"

	"usof/models"

	"gorm.io/gorm"
)

// 用户评分 = 其帖子收到的反应之和 + 其评论收到的反应之和，like 记 +1，dislike 记 -1
const ratingSQL = `SELECT
	COALESCE((SELECT SUM(CASE WHEN l.type = ? THEN 1 ELSE -1 END)
		FROM likes l JOIN posts p ON l.target_type = ? AND l.target_id = p.post_id
		WHERE p.author_id = ?), 0)
	+ COALESCE((SELECT SUM(CASE WHEN l.type = ? THEN 1 ELSE -1 END)
		FROM likes l JOIN comments c ON l.target_type = ? AND l.target_id = c.comment_id
		WHERE c.author_id = ?), 0) AS rating`

// RecomputeRating 全量重算用户评分并写回 users.rating
func RecomputeRating(ctx context.Context, userID int64) (rating int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rating, err = recomputeRating(tx, userID)
		return err
	})
	return rating, err
}

func recomputeRating(tx *gorm.DB, userID int64) (int64, error) {
	var rating int64
	err := tx.Raw(ratingSQL,
		models.ReactionLike, models.TargetPost, userID,
		models.ReactionLike, models.TargetComment, userID,
	).Scan(&rating).Error
	if err != nil {
		return 0, fmt.Errorf("compute rating (user_id: %d) failed: %w", userID, err)
	}
	err = tx.Model(&models.User{}).Where("user_id = ?", userID).
		UpdateColumn("rating", rating).Error
	if err != nil {
		return 0, fmt.Errorf("save rating (user_id: %d) failed: %w", userID, err)
	}
	return rating, nil
}

// recomputeRatings 对一组用户逐个重算，忽略 0 和重复
func recomputeRatings(tx *gorm.DB, userIDs []int64) error {
	seen := make(map[int64]struct{}, len(userIDs))
	for _, uid := range userIDs {
		if uid == 0 {
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		if _, err := recomputeRating(tx, uid); err != nil {
			return err
		}
	}
	return nil
}

const recountAllSQL = `UPDATE %s SET
	likes_count = (SELECT COUNT(*) FROM likes WHERE likes.target_type = ? AND likes.target_id = %s.%s AND likes.type = ?),
	dislikes_count = (SELECT COUNT(*) FROM likes WHERE likes.target_type = ? AND likes.target_id = %s.%s AND likes.type = ?)`

const rerateAllSQL = `UPDATE users SET rating =
	COALESCE((SELECT SUM(CASE WHEN l.type = ? THEN 1 ELSE -1 END)
		FROM likes l JOIN posts p ON l.target_type = ? AND l.target_id = p.post_id
		WHERE p.author_id = users.user_id), 0)
	+ COALESCE((SELECT SUM(CASE WHEN l.type = ? THEN 1 ELSE -1 END)
		FROM likes l JOIN comments c ON l.target_type = ? AND l.target_id = c.comment_id
		WHERE c.author_id = users.user_id), 0)`

// RecomputeAll 修复任务：重算所有帖子、评论的计数和所有用户的评分
func RecomputeAll(ctx context.Context) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		targets := []struct{ table, pk, kind string }{
			{"posts", "post_id", models.TargetPost},
			{"comments", "comment_id", models.TargetComment},
		}
		for _, t := range targets {
			sql := fmt.Sprintf(recountAllSQL, t.table, t.table, t.pk, t.table, t.pk)
			if err := tx.Exec(sql, t.kind, models.ReactionLike, t.kind, models.ReactionDislike).Error; err != nil {
				return fmt.Errorf("recount %s failed: %w", t.table, err)
			}
		}
		err := tx.Exec(rerateAllSQL,
			models.ReactionLike, models.TargetPost,
			models.ReactionLike, models.TargetComment,
		).Error
		if err != nil {
			return fmt.Errorf("recompute all ratings failed: %w", err)
		}
		return nil
	})
}
