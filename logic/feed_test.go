package logic

import (
	"testing"
	"time"

	"usof/models"
)

func fp(id, likes int64, status string, minute int) *models.ApiPostDetail {
	return &models.ApiPostDetail{Post: &models.Post{
		ID:         id,
		LikesCount: likes,
		Status:     status,
		CreateTime: t0.Add(time.Duration(minute) * time.Minute),
	}}
}

func pageIDs(p *models.PostPage) []int64 {
	ids := make([]int64, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestMergeCategoryFeedsIntersection(t *testing.T) {
	a := []*models.ApiPostDetail{fp(1, 0, "active", 1), fp(2, 0, "active", 2), fp(3, 0, "active", 3)}
	b := []*models.ApiPostDetail{fp(2, 0, "active", 2), fp(3, 0, "active", 3), fp(4, 0, "active", 4)}

	page := MergeCategoryFeeds([][]*models.ApiPostDetail{a, b}, FeedOptions{Match: MatchAll, Sort: "date", Order: "asc"})
	if page.Total != 2 || !equalIDs(pageIDs(page), []int64{2, 3}) {
		t.Fatalf("intersection = %v (total %d)", pageIDs(page), page.Total)
	}

	page = MergeCategoryFeeds([][]*models.ApiPostDetail{a, b}, FeedOptions{Match: MatchAny, Sort: "date", Order: "asc"})
	if page.Total != 4 || !equalIDs(pageIDs(page), []int64{1, 2, 3, 4}) {
		t.Fatalf("union = %v (total %d)", pageIDs(page), page.Total)
	}
}

func TestMergeCategoryFeedsFirstSeenWins(t *testing.T) {
	a := []*models.ApiPostDetail{fp(1, 5, "active", 1)}
	b := []*models.ApiPostDetail{fp(1, 99, "active", 1)}
	page := MergeCategoryFeeds([][]*models.ApiPostDetail{a, b}, FeedOptions{})
	if page.Total != 1 || page.Items[0].LikesCount != 5 {
		t.Fatalf("dedupe kept %+v", page.Items[0].Post)
	}
}

func TestMergeCategoryFeedsPageClamp(t *testing.T) {
	var list []*models.ApiPostDetail
	for i := 1; i <= 7; i++ {
		list = append(list, fp(int64(i), 0, "active", i))
	}
	page := MergeCategoryFeeds([][]*models.ApiPostDetail{list}, FeedOptions{Sort: "date", Order: "asc", Page: 3, Limit: 5})
	if page.Page != 2 {
		t.Fatalf("page = %d, want clamped to 2", page.Page)
	}
	if !equalIDs(pageIDs(page), []int64{6, 7}) {
		t.Fatalf("items = %v, want [6 7]", pageIDs(page))
	}

	empty := MergeCategoryFeeds(nil, FeedOptions{Page: 4, Limit: 5})
	if empty.Page != 1 || empty.Total != 0 || len(empty.Items) != 0 {
		t.Fatalf("empty feed = %+v", empty)
	}
}

func TestMergeCategoryFeedsStatusAndSort(t *testing.T) {
	list := []*models.ApiPostDetail{
		fp(1, 3, "active", 1),
		fp(2, 10, "inactive", 2),
		fp(3, 7, "active", 3),
		fp(4, 7, "active", 4),
	}
	lists := [][]*models.ApiPostDetail{list}

	tests := []struct {
		name string
		opt  FeedOptions
		want []int64
	}{
		{"default active by likes desc", FeedOptions{}, []int64{3, 4, 1}},
		{"likes asc", FeedOptions{Order: "asc"}, []int64{1, 3, 4}},
		{"date desc", FeedOptions{Sort: "date"}, []int64{4, 3, 1}},
		{"inactive only", FeedOptions{Status: models.StatusInactive}, []int64{2}},
		{"all by likes", FeedOptions{Status: models.StatusAll}, []int64{2, 3, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageIDs(MergeCategoryFeeds(lists, tt.opt))
			if !equalIDs(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Go":                 "go",
		"Hello, World!":      "hello-world",
		"  C++ & Rust  ":     "c-rust",
		"already-slug":       "already-slug",
		"Тест":               "",
		"Web 3.0 -- future ": "web-3-0-future",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
