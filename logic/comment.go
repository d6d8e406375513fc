package logic

import (
	"context"

	"usof/dao/mysql"
	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/snowflake"

	"go.uber.org/zap"
)

var errParentNotInPost = errorx.ErrInvalidParam.WithMsg("父评论不属于该帖子")

// CreateComment 发表评论或回复
// 参数:
//   viewer: 当前登录用户
//   postID: 所属帖子
//   p: 正文和可选的 parent_id
//
// 业务规则:
//   1. 帖子必须对访问者可见且处于 active 状态
//   2. 有 parent_id 时父评论必须属于同一帖子且为 active，回复的回复挂到顶层评论下，嵌套不超过一层
//   3. 没有 parent_id 时兼容旧的 "@<id> " 前缀写法，按同样规则解析出父评论并去掉前缀
//   4. 前缀解析失败（评论不存在、不可见、已关闭或不在本帖）时按普通顶层评论保存，正文保持原样
func CreateComment(ctx context.Context, viewer models.Viewer, postID int64, p *models.ParamCommentCreate) (*models.CommentNode, error) {
	// 1. 帖子可见且未关闭
	post, err := loadPost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsActive() {
		return nil, errorx.ErrPostInactive
	}

	content := p.Content
	var parentID int64
	explicit := p.ParentID != nil
	if explicit {
		parentID = int64(*p.ParentID)
	} else if anchor, pure := ParseReplyAnchor(content); anchor != 0 {
		parentID = anchor
		content = pure
	}

	c := &models.Comment{
		ID:       snowflake.GenID(),
		PostID:   postID,
		AuthorID: viewer.UserID,
		Status:   models.StatusActive,
	}
	// 2/3. 解析父评论，统一落到顶层评论 ID
	if parentID != 0 {
		root, err := replyRoot(ctx, viewer, postID, parentID)
		if err != nil {
			if !explicit && (errorx.ErrInvalidParam.Is(err) || errorx.ErrNotFound.Is(err) || errorx.ErrForbidden.Is(err)) {
				// 无法解析的锚点按普通顶层评论处理，正文保持原样
				root, content = 0, p.Content
			} else {
				return nil, err
			}
		}
		if root != 0 {
			c.ParentID = &root
		}
	}
	c.Content = content

	// 4. 入库
	if err = mysql.CreateComment(ctx, c); err != nil {
		zap.L().Error("mysql.CreateComment failed",
			zap.Int64("post_id", postID),
			zap.Int64("comment_id", c.ID),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return (&threadNode{Comment: c, pure: c.Content}).toNode(), nil
}

// replyRoot 校验父评论并返回它所在的顶层评论 ID
func replyRoot(ctx context.Context, viewer models.Viewer, postID, parentID int64) (int64, error) {
	parent, err := mysql.GetCommentByID(ctx, parentID)
	if err != nil {
		zap.L().Error("mysql.GetCommentByID failed", zap.Int64("comment_id", parentID), zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	if parent == nil || !canSeeComment(viewer, parent) {
		return 0, errorx.ErrCommentNotExist
	}
	if parent.PostID != postID {
		return 0, errParentNotInPost
	}
	if !parent.IsActive() {
		return 0, errCommentInactive
	}
	if parent.ParentID != nil {
		return *parent.ParentID, nil
	}
	return parent.ID, nil
}

// loadComment 评论及其所属帖子都必须对访问者可见
func loadComment(ctx context.Context, viewer models.Viewer, id int64) (*models.Comment, error) {
	c, err := mysql.GetCommentByID(ctx, id)
	if err != nil {
		zap.L().Error("mysql.GetCommentByID failed", zap.Int64("comment_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if c == nil || !canSeeComment(viewer, c) {
		return nil, errorx.ErrCommentNotExist
	}
	if _, err = loadPost(ctx, viewer, c.PostID); err != nil {
		return nil, err
	}
	return c, nil
}

func GetComment(ctx context.Context, viewer models.Viewer, id int64) (*models.CommentNode, error) {
	c, err := loadComment(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	nodes := normalize([]*models.Comment{c})
	return nodes[0].toNode(), nil
}

func postComments(ctx context.Context, viewer models.Viewer, postID int64) ([]*models.Comment, error) {
	if _, err := loadPost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	data, err := mysql.ListCommentsByPost(ctx, postID)
	if err != nil {
		zap.L().Error("mysql.ListCommentsByPost failed", zap.Int64("post_id", postID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return data, nil
}

// GetPostComments 帖子下对访问者可见的评论，平铺
func GetPostComments(ctx context.Context, viewer models.Viewer, postID int64) ([]*models.CommentNode, error) {
	data, err := postComments(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	return VisibleComments(data, viewer), nil
}

// GetCommentTree 帖子下的两层评论树
func GetCommentTree(ctx context.Context, viewer models.Viewer, postID int64) (*models.CommentTree, error) {
	data, err := postComments(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(data, viewer), nil
}

// SetCommentStatus 管理员可任意切换；作者只能关闭自己的评论
func SetCommentStatus(ctx context.Context, viewer models.Viewer, id int64, status string) (*models.CommentNode, error) {
	c, err := loadComment(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() {
		if c.AuthorID != viewer.UserID {
			return nil, errorx.ErrForbidden
		}
		if status != models.StatusInactive {
			return nil, errorx.ErrAdminOnlyStatus
		}
	}
	if err = mysql.UpdateCommentStatus(ctx, id, status); err != nil {
		zap.L().Error("mysql.UpdateCommentStatus failed", zap.Int64("comment_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	c.Status = status
	return normalize([]*models.Comment{c})[0].toNode(), nil
}

// DeleteComment 作者或管理员硬删除；回复保留，读取时提升为顶层
func DeleteComment(ctx context.Context, viewer models.Viewer, id int64) error {
	c, err := loadComment(ctx, viewer, id)
	if err != nil {
		return err
	}
	if c.AuthorID != viewer.UserID && !viewer.IsAdmin() {
		return errorx.ErrForbidden
	}
	if err = mysql.DeleteComment(ctx, id); err != nil {
		zap.L().Error("mysql.DeleteComment failed", zap.Int64("comment_id", id), zap.Error(err))
		return errorx.ErrServerBusy
	}
	evictUsers(ctx, c.AuthorID)
	return nil
}
