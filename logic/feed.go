package logic

import (
	"context"
	"sort"
	"time"

	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	MatchAny = "any"
	MatchAll = "all"
)

// FeedOptions 多分类聚合的组合、过滤、排序和分页参数
type FeedOptions struct {
	Match  string
	Status string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

func statusPass(status string, p *models.ApiPostDetail) bool {
	switch status {
	case models.StatusAll:
		return true
	case models.StatusInactive:
		return p.Status == models.StatusInactive
	default:
		return p.Status == models.StatusActive
	}
}

// combine match=all 取交集，否则取并集；按帖子 ID 去重，先出现的实例生效
func combine(lists [][]*models.ApiPostDetail, match string) []*models.ApiPostDetail {
	first := make(map[int64]*models.ApiPostDetail)
	order := make([]int64, 0)
	seenIn := make(map[int64]int)
	for _, list := range lists {
		once := make(map[int64]bool, len(list))
		for _, p := range list {
			if p == nil || p.Post == nil || once[p.ID] {
				continue
			}
			once[p.ID] = true
			seenIn[p.ID]++
			if _, ok := first[p.ID]; !ok {
				first[p.ID] = p
				order = append(order, p.ID)
			}
		}
	}
	out := make([]*models.ApiPostDetail, 0, len(order))
	for _, id := range order {
		if match == MatchAll && seenIn[id] != len(lists) {
			continue
		}
		out = append(out, first[id])
	}
	return out
}

// MergeCategoryFeeds 合并多个分类的帖子列表，再过滤、排序、分页
// 请求页超出范围时退到最后一页
func MergeCategoryFeeds(lists [][]*models.ApiPostDetail, opt FeedOptions) *models.PostPage {
	limit := opt.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	combined := combine(lists, opt.Match)
	pool := make([]*models.ApiPostDetail, 0, len(combined))
	for _, p := range combined {
		if statusPass(opt.Status, p) {
			pool = append(pool, p)
		}
	}

	desc := opt.Order != "asc"
	byDate := opt.Sort == "date"
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if byDate {
			if desc {
				return a.CreateTime.After(b.CreateTime)
			}
			return a.CreateTime.Before(b.CreateTime)
		}
		if desc {
			return a.LikesCount > b.LikesCount
		}
		return a.LikesCount < b.LikesCount
	})

	total := len(pool)
	maxPage := (total + limit - 1) / limit
	if maxPage < 1 {
		maxPage = 1
	}
	page := opt.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	return &models.PostPage{
		Total: int64(total),
		Page:  page,
		Limit: limit,
		Items: pool[start:end],
	}
}

// GetFeed 多分类聚合查询
// 参数:
//   viewer: 当前访问者，决定能看到哪些状态的帖子
//   p: 分类 ID 列表、match(any/all)、状态、排序和分页
//
// 业务规则:
//   1. categories 必须是逗号分隔的分类 ID
//   2. 非管理员或未指定状态时只看 active 帖子
//   3. 用 errgroup 并发拉取每个分类的完整列表，并发数受 feed.concurrency 限制，任一失败整体失败
//   4. 交给 MergeCategoryFeeds 合并去重、排序、分页，默认按点赞数排序
func GetFeed(ctx context.Context, viewer models.Viewer, p *models.ParamFeed) (*models.PostPage, error) {
	// 1. 解析分类
	ids, ok := models.ParseIDList(p.Categories)
	if !ok || len(ids) == 0 {
		return nil, errorx.ErrInvalidParam.WithMsg("categories 应为逗号分隔的分类 ID")
	}
	// 2. 状态过滤
	status := p.Status
	if !viewer.IsAdmin() || status == "" {
		status = models.StatusActive
	}

	// 3. 有界并发拉取
	start := time.Now()
	lists := make([][]*models.ApiPostDetail, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(feedConcurrency())
	for i, id := range ids {
		g.Go(func() error {
			list, err := listCategoryPosts(gctx, viewer, id, status)
			if err != nil {
				return err
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())

	// 4. 合并
	return MergeCategoryFeeds(lists, FeedOptions{
		Match:  p.Match,
		Status: status,
		Sort:   defaultString(p.Sort, "likes"),
		Order:  p.Order,
		Page:   p.Page,
		Limit:  p.Limit,
	}), nil
}
