package logic

import (
	"testing"
	"time"

	"usof/models"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func cm(id, author int64, content, status string, minute int) *models.Comment {
	return &models.Comment{
		ID:         id,
		PostID:     1,
		AuthorID:   author,
		Content:    content,
		Status:     status,
		CreateTime: t0.Add(time.Duration(minute) * time.Minute),
	}
}

func rootIDs(tree *models.CommentTree) []int64 {
	ids := make([]int64, 0, len(tree.Roots))
	for _, g := range tree.Roots {
		ids = append(ids, g.Node.ID)
	}
	return ids
}

func replyIDs(g *models.CommentGroup) []int64 {
	ids := make([]int64, 0, len(g.Replies))
	for _, r := range g.Replies {
		ids = append(ids, r.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseReplyAnchor(t *testing.T) {
	tests := []struct {
		in     string
		parent int64
		pure   string
	}{
		{"@7 nice", 7, "nice"},
		{"@12   spaced out", 12, "spaced out"},
		{"@7\tTab", 7, "Tab"},
		{"plain text", 0, "plain text"},
		{"@abc hi", 0, "@abc hi"},
		{"@7nospace", 0, "@7nospace"},
		{"hi @7 there", 0, "hi @7 there"},
		{"@0 zero", 0, "zero"},
	}
	for _, tt := range tests {
		parent, pure := ParseReplyAnchor(tt.in)
		if parent != tt.parent || pure != tt.pure {
			t.Errorf("ParseReplyAnchor(%q) = %d, %q; want %d, %q", tt.in, parent, pure, tt.parent, tt.pure)
		}
	}
}

func TestBuildCommentTreeReplyUnderActiveParent(t *testing.T) {
	comments := []*models.Comment{
		cm(7, 1, "root", models.StatusActive, 0),
		cm(8, 2, "@7 nice", models.StatusActive, 1),
		cm(9, 3, "@7 later", models.StatusActive, 2),
	}
	tree := BuildCommentTree(comments, models.Viewer{UserID: 99, Role: models.RoleUser})
	if !equalIDs(rootIDs(tree), []int64{7}) {
		t.Fatalf("roots = %v", rootIDs(tree))
	}
	g := tree.Roots[0]
	if !equalIDs(replyIDs(g), []int64{9, 8}) {
		t.Fatalf("replies = %v, want newest first", replyIDs(g))
	}
	if g.Replies[1].PureContent != "nice" {
		t.Fatalf("pure content = %q", g.Replies[1].PureContent)
	}
}

func TestBuildCommentTreeInactiveParentHidesReplies(t *testing.T) {
	comments := []*models.Comment{
		cm(7, 1, "root", models.StatusInactive, 0),
		cm(8, 2, "@7 nice", models.StatusActive, 1),
		cm(10, 3, "other", models.StatusActive, 2),
	}
	// 非管理员、非作者：7 和它的回复都看不到
	tree := BuildCommentTree(comments, models.Viewer{UserID: 99, Role: models.RoleUser})
	if !equalIDs(rootIDs(tree), []int64{10}) {
		t.Fatalf("roots = %v, want [10]", rootIDs(tree))
	}

	// 作者能看到自己关闭的评论，但其下的回复仍然隐藏
	tree = BuildCommentTree(comments, models.Viewer{UserID: 1, Role: models.RoleUser})
	if !equalIDs(rootIDs(tree), []int64{7, 10}) || len(tree.Roots[0].Replies) != 0 {
		t.Fatalf("owner view roots = %v", rootIDs(tree))
	}

	// 管理员看到全部
	tree = BuildCommentTree(comments, models.Viewer{UserID: 50, Role: models.RoleAdmin})
	if !equalIDs(rootIDs(tree), []int64{7, 10}) || !equalIDs(replyIDs(tree.Roots[0]), []int64{8}) {
		t.Fatalf("admin view roots = %v", rootIDs(tree))
	}
}

func TestBuildCommentTreeOrphanPromotion(t *testing.T) {
	comments := []*models.Comment{
		cm(1, 1, "first", models.StatusActive, 0),
		cm(2, 2, "@999 hi", models.StatusActive, 1),
		cm(3, 3, "@1 reply", models.StatusActive, 2),
	}
	tree := BuildCommentTree(comments, models.Viewer{})
	if !equalIDs(rootIDs(tree), []int64{1, 2}) {
		t.Fatalf("roots = %v, want [1 2]", rootIDs(tree))
	}
	if tree.Roots[1].Node.PureContent != "hi" {
		t.Fatalf("orphan pure content = %q", tree.Roots[1].Node.PureContent)
	}
}

func TestBuildCommentTreeOwnInactiveVisible(t *testing.T) {
	comments := []*models.Comment{
		cm(1, 1, "root", models.StatusActive, 0),
		cm(2, 5, "@1 mine", models.StatusInactive, 1),
		cm(3, 6, "@1 theirs", models.StatusInactive, 2),
	}
	tree := BuildCommentTree(comments, models.Viewer{UserID: 5, Role: models.RoleUser})
	if !equalIDs(replyIDs(tree.Roots[0]), []int64{2}) {
		t.Fatalf("replies = %v, want own inactive only", replyIDs(tree.Roots[0]))
	}
}

func TestBuildCommentTreeParentColumnAndChains(t *testing.T) {
	p1 := int64(1)
	p2 := int64(2)
	c2 := cm(2, 2, "via column", models.StatusActive, 1)
	c2.ParentID = &p1
	c3 := cm(3, 3, "deeper", models.StatusActive, 2)
	c3.ParentID = &p2
	comments := []*models.Comment{cm(1, 1, "root", models.StatusActive, 0), c2, c3}

	tree := BuildCommentTree(comments, models.Viewer{})
	if !equalIDs(rootIDs(tree), []int64{1}) {
		t.Fatalf("roots = %v", rootIDs(tree))
	}
	if !equalIDs(replyIDs(tree.Roots[0]), []int64{3, 2}) {
		t.Fatalf("replies = %v, chain should flatten under the root", replyIDs(tree.Roots[0]))
	}
	if tree.Roots[0].Replies[1].PureContent != "via column" {
		t.Fatalf("pure content = %q", tree.Roots[0].Replies[1].PureContent)
	}
}

func TestBuildCommentTreeCycle(t *testing.T) {
	comments := []*models.Comment{
		cm(1, 1, "@2 a", models.StatusActive, 0),
		cm(2, 1, "@1 b", models.StatusActive, 1),
	}
	tree := BuildCommentTree(comments, models.Viewer{})
	if !equalIDs(rootIDs(tree), []int64{1, 2}) {
		t.Fatalf("roots = %v", rootIDs(tree))
	}
}

func TestVisibleComments(t *testing.T) {
	comments := []*models.Comment{
		cm(1, 1, "a", models.StatusActive, 0),
		cm(2, 2, "b", models.StatusInactive, 1),
		cm(3, 3, "@2 c", models.StatusActive, 2),
	}
	got := VisibleComments(comments, models.Viewer{})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("anonymous visible = %d items", len(got))
	}
	got = VisibleComments(comments, models.Viewer{UserID: 9, Role: models.RoleAdmin})
	if len(got) != 3 {
		t.Fatalf("admin visible = %d items", len(got))
	}
}
