package logic

import (
	"regexp"
	"sort"
	"strconv"

	"usof/models"
	"usof/pkg/markdown"
)

// 旧数据里回复关系写在正文开头："@<评论ID> 正文"
var replyAnchor = regexp.MustCompile(`^@(\d+)\s+`)

// ParseReplyAnchor 解析正文开头的回复锚点，没有锚点时 parentID 为 0、正文原样返回
func ParseReplyAnchor(content string) (parentID int64, pure string) {
	m := replyAnchor.FindStringSubmatchIndex(content)
	if m == nil {
		return 0, content
	}
	id, err := strconv.ParseInt(content[m[2]:m[3]], 10, 64)
	if err != nil {
		id = 0
	}
	return id, content[m[1]:]
}

type threadNode struct {
	*models.Comment
	parentID int64
	pure     string
}

// normalize parent_id 列优先，没有时回退到正文锚点
func normalize(comments []*models.Comment) []*threadNode {
	nodes := make([]*threadNode, 0, len(comments))
	for _, c := range comments {
		anchor, pure := ParseReplyAnchor(c.Content)
		n := &threadNode{Comment: c, parentID: anchor, pure: pure}
		if c.ParentID != nil {
			n.parentID = *c.ParentID
			if anchor != *c.ParentID {
				n.pure = c.Content
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// canSeeComment 只看评论本身：active，或者是访问者自己关闭的评论
func canSeeComment(viewer models.Viewer, c *models.Comment) bool {
	if viewer.IsAdmin() || c.IsActive() {
		return true
	}
	return !viewer.IsAnonymous() && c.AuthorID == viewer.UserID
}

// hasInactiveAncestor 沿父链向上，遇到集合外的父评论即停止
func hasInactiveAncestor(n *threadNode, byID map[int64]*threadNode) bool {
	seen := map[int64]bool{n.ID: true}
	for p := n.parentID; p != 0 && !seen[p]; {
		parent, ok := byID[p]
		if !ok {
			return false
		}
		if !parent.IsActive() {
			return true
		}
		seen[p] = true
		p = parent.parentID
	}
	return false
}

// visibleNodes 管理员看到全部；其他人看到 active 和自己关闭的评论，
// 任一祖先被关闭的评论整体隐藏
func visibleNodes(nodes []*threadNode, viewer models.Viewer) []*threadNode {
	if viewer.IsAdmin() {
		return nodes
	}
	byID := make(map[int64]*threadNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	out := make([]*threadNode, 0, len(nodes))
	for _, n := range nodes {
		if canSeeComment(viewer, n.Comment) && !hasInactiveAncestor(n, byID) {
			out = append(out, n)
		}
	}
	return out
}

func (n *threadNode) toNode() *models.CommentNode {
	return &models.CommentNode{
		Comment:     n.Comment,
		PureContent: n.pure,
		ContentHTML: markdown.Render(n.pure),
	}
}

// VisibleComments 按访问者过滤后的平铺列表，保持输入顺序
func VisibleComments(comments []*models.Comment, viewer models.Viewer) []*models.CommentNode {
	nodes := visibleNodes(normalize(comments), viewer)
	out := make([]*models.CommentNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.toNode())
	}
	return out
}

// BuildCommentTree 把平铺评论组装成两层结构
// 父评论不在可见集合里的评论提升为顶层；顶层保持输入顺序，回复按创建时间倒序
func BuildCommentTree(comments []*models.Comment, viewer models.Viewer) *models.CommentTree {
	visible := visibleNodes(normalize(comments), viewer)
	byID := make(map[int64]*threadNode, len(visible))
	for _, n := range visible {
		byID[n.ID] = n
	}

	// rootOf 找到最上层的可见祖先；旧数据里的多级链条也挂到同一个顶层下
	// 父链成环时该评论自己作为顶层
	rootOf := func(n *threadNode) *threadNode {
		cur := n
		seen := map[int64]bool{n.ID: true}
		for cur.parentID != 0 {
			parent, ok := byID[cur.parentID]
			if !ok {
				return cur
			}
			if seen[parent.ID] {
				return n
			}
			seen[parent.ID] = true
			cur = parent
		}
		return cur
	}

	tree := &models.CommentTree{Roots: make([]*models.CommentGroup, 0)}
	groups := make(map[int64]*models.CommentGroup)
	roots := make(map[*threadNode]*threadNode, len(visible))
	for _, n := range visible {
		r := rootOf(n)
		roots[n] = r
		if r == n {
			g := &models.CommentGroup{Node: n.toNode(), Replies: make([]*models.CommentNode, 0)}
			groups[n.ID] = g
			tree.Roots = append(tree.Roots, g)
		}
	}
	for _, n := range visible {
		r := roots[n]
		if r == n {
			continue
		}
		g := groups[r.ID]
		g.Replies = append(g.Replies, n.toNode())
	}
	for _, g := range tree.Roots {
		sort.SliceStable(g.Replies, func(i, j int) bool {
			return g.Replies[i].CreateTime.After(g.Replies[j].CreateTime)
		})
	}
	return tree
}
