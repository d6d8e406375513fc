package logic

import (
	"context"
	"errors"

	"usof/dao/mysql"
	"usof/models"
	"usof/pkg/errno"
	"usof/pkg/errorx"
	"usof/pkg/metrics"
	"usof/pkg/snowflake"
	"usof/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var errCommentInactive = errorx.ErrForbidden.WithMsg("评论已被关闭")

// resolveTarget 校验目标存在且对访问者可见，返回目标作者
// requireActive 为 true 时目标及其所属帖子都必须是 active
func resolveTarget(ctx context.Context, viewer models.Viewer, target models.ReactionTarget, requireActive bool) (int64, error) {
	switch target.Kind {
	case models.TargetPost:
		post, err := loadPost(ctx, viewer, target.ID)
		if err != nil {
			return 0, err
		}
		if requireActive && !post.IsActive() {
			return 0, errorx.ErrPostInactive
		}
		return post.AuthorID, nil
	case models.TargetComment:
		c, err := mysql.GetCommentByID(ctx, target.ID)
		if err != nil {
			zap.L().Error("mysql.GetCommentByID failed", zap.Int64("comment_id", target.ID), zap.Error(err))
			return 0, errorx.ErrServerBusy
		}
		if c == nil || !canSeeComment(viewer, c) {
			return 0, errorx.ErrCommentNotExist
		}
		post, err := loadPost(ctx, viewer, c.PostID)
		if err != nil {
			return 0, err
		}
		if requireActive {
			if !post.IsActive() {
				return 0, errorx.ErrPostInactive
			}
			if !c.IsActive() {
				return 0, errCommentInactive
			}
		}
		return c.AuthorID, nil
	default:
		return 0, errorx.ErrInvalidParam
	}
}

// resultLabel 指标里的 result 标签
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errorx.ErrConflict):
		return "conflict"
	case errors.Is(err, errorx.ErrNotFound):
		return "not_found"
	case errors.Is(err, errorx.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

// SetReaction 记录一次 like / dislike
// 参数:
//   viewer: 做出反应的用户
//   target: 帖子或评论
//   typ: like / dislike，为空时按 like 处理
//
// 业务规则:
//   1. 目标必须可见，所属帖子必须是 active，评论还要求自身 active
//   2. 已有任何反应（无论类型）时返回冲突，切换类型走 SwitchReaction
//   3. 插入反应后在同一事务中全量重算目标计数和目标作者的评分
//   4. 失效目标作者的用户缓存
func SetReaction(ctx context.Context, viewer models.Viewer, target models.ReactionTarget, typ string) (res *models.ReactionResult, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "logic.SetReaction")
	span.SetAttributes(
		attribute.String("target.kind", target.Kind),
		attribute.Int64("target.id", target.ID),
		attribute.String("reaction.type", typ),
	)
	defer func() {
		metrics.ReactionOpsTotal.WithLabelValues(target.Kind, "set", resultLabel(err)).Inc()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if typ == "" {
		typ = models.ReactionLike
	}
	// 1. 校验目标，拿到目标作者
	authorID, err := resolveTarget(ctx, viewer, target, true)
	if err != nil {
		return nil, err
	}
	// 2/3. 冲突检查、插入与重算都在 dao 的事务里
	r := &models.Reaction{
		ID:         snowflake.GenID(),
		AuthorID:   viewer.UserID,
		TargetType: target.Kind,
		TargetID:   target.ID,
		Type:       typ,
	}
	res, err = mysql.SetReaction(ctx, r, authorID)
	if err != nil {
		if errors.Is(err, errno.ErrorReactionExist) {
			return nil, errorx.ErrReactionExist
		}
		zap.L().Error("mysql.SetReaction failed",
			zap.Int64("actor_id", viewer.UserID),
			zap.String("target_kind", target.Kind),
			zap.Int64("target_id", target.ID),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	metrics.RatingRecomputeTotal.WithLabelValues("user").Inc()
	// 4. 评分变了
	evictUsers(ctx, authorID)
	return res, nil
}

// ClearReaction 撤销反应；不存在时返回 ErrReactionNotExist，不做任何修改
func ClearReaction(ctx context.Context, viewer models.Viewer, target models.ReactionTarget) (res *models.ReactionResult, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "logic.ClearReaction")
	span.SetAttributes(
		attribute.String("target.kind", target.Kind),
		attribute.Int64("target.id", target.ID),
	)
	defer func() {
		metrics.ReactionOpsTotal.WithLabelValues(target.Kind, "clear", resultLabel(err)).Inc()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	authorID, err := resolveTarget(ctx, viewer, target, true)
	if err != nil {
		return nil, err
	}
	res, err = mysql.ClearReaction(ctx, viewer.UserID, target, authorID)
	if err != nil {
		if errors.Is(err, errno.ErrorReactionNotExist) {
			return nil, errorx.ErrReactionNotExist
		}
		zap.L().Error("mysql.ClearReaction failed",
			zap.Int64("actor_id", viewer.UserID),
			zap.String("target_kind", target.Kind),
			zap.Int64("target_id", target.ID),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	metrics.RatingRecomputeTotal.WithLabelValues("user").Inc()
	evictUsers(ctx, authorID)
	return res, nil
}

// SwitchReaction 切换反应类型：先 clear 再 set，是两次独立的变更，
// 两步之间的读者会看到目标上没有该用户的反应
func SwitchReaction(ctx context.Context, viewer models.Viewer, target models.ReactionTarget, typ string) (res *models.ReactionResult, err error) {
	defer func() {
		metrics.ReactionOpsTotal.WithLabelValues(target.Kind, "switch", resultLabel(err)).Inc()
	}()

	existing, err := mysql.GetReaction(ctx, viewer.UserID, target)
	if err != nil {
		zap.L().Error("mysql.GetReaction failed", zap.Int64("actor_id", viewer.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if existing == nil {
		return nil, errorx.ErrReactionNotExist
	}
	if existing.Type == typ {
		return nil, errorx.ErrReactionExist
	}
	if _, err = ClearReaction(ctx, viewer, target); err != nil {
		return nil, err
	}
	return SetReaction(ctx, viewer, target, typ)
}

// ListReactions 目标上的全部反应，目标需对访问者可见
func ListReactions(ctx context.Context, viewer models.Viewer, target models.ReactionTarget) ([]*models.Reaction, error) {
	if _, err := resolveTarget(ctx, viewer, target, false); err != nil {
		return nil, err
	}
	data, err := mysql.ListReactions(ctx, target)
	if err != nil {
		zap.L().Error("mysql.ListReactions failed",
			zap.String("target_kind", target.Kind),
			zap.Int64("target_id", target.ID),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return data, nil
}

// RecomputeRating 单个用户的评分重算
func RecomputeRating(ctx context.Context, uid int64) (int64, error) {
	if err := ensureUser(ctx, uid); err != nil {
		return 0, err
	}
	rating, err := mysql.RecomputeRating(ctx, uid)
	if err != nil {
		zap.L().Error("mysql.RecomputeRating failed", zap.Int64("user_id", uid), zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	metrics.RatingRecomputeTotal.WithLabelValues("user").Inc()
	evictUsers(ctx, uid)
	return rating, nil
}
