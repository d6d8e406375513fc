package logic

import (
	"context"
	"time"

	"usof/dao/mysql"
	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/metrics"

	"go.uber.org/zap"
)

func GetDashboard(ctx context.Context) (*mysql.Dashboard, error) {
	d, err := mysql.GetDashboard(ctx)
	if err != nil {
		zap.L().Error("mysql.GetDashboard failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return d, nil
}

// AdminListPosts 管理后台帖子列表，不限状态
func AdminListPosts(ctx context.Context, p *models.ParamPostList) (*models.PostPage, error) {
	admin := models.Viewer{Role: models.RoleAdmin}
	if p.Status == "" {
		p.Status = models.StatusAll
	}
	return ListPosts(ctx, admin, p)
}

// AdminListComments 管理后台评论列表，不限状态
func AdminListComments(ctx context.Context) ([]*models.Comment, error) {
	data, err := mysql.ListComments(ctx)
	if err != nil {
		zap.L().Error("mysql.ListComments failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return data, nil
}

// RecomputeAll 修复任务：全量重算所有计数和评分，返回耗时
func RecomputeAll(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := mysql.RecomputeAll(ctx); err != nil {
		zap.L().Error("mysql.RecomputeAll failed", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	metrics.RatingRecomputeTotal.WithLabelValues("all").Inc()
	elapsed := time.Since(start)
	zap.L().Info("recompute all counters and ratings done", zap.Duration("elapsed", elapsed))
	// 评分全部可能变化，缓存交给 TTL 过期
	return elapsed, nil
}
