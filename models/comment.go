package models

import "time"

// Comment 对应 comments 表
// ParentID 为空表示顶层评论；回复只允许一层，写入时保证 ParentID 指向顶层评论
type Comment struct {
	ID            int64     `json:"id,string" gorm:"column:comment_id;primaryKey;autoIncrement:false"`
	PostID        int64     `json:"post_id,string" gorm:"column:post_id;index;not null"`
	AuthorID      int64     `json:"author_id,string" gorm:"column:author_id;index;not null"`
	ParentID      *int64    `json:"parent_id,string,omitempty" gorm:"column:parent_id;index"`
	LikesCount    int64     `json:"likes_count" gorm:"column:likes_count;not null;default:0"`
	DislikesCount int64     `json:"dislikes_count" gorm:"column:dislikes_count;not null;default:0"`
	Status        string    `json:"status" gorm:"column:status;size:16;not null;default:active"`
	Content       string    `json:"content" gorm:"column:content;type:text;not null"`
	CreateTime    time.Time `json:"create_time" gorm:"column:create_time;autoCreateTime"`
	UpdateTime    time.Time `json:"update_time" gorm:"column:update_time;autoUpdateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:UserID"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) IsActive() bool {
	return c.Status == StatusActive
}

// CommentNode 评论树中的节点，PureContent 是去掉回复锚点后的正文
type CommentNode struct {
	*Comment
	PureContent string `json:"pure_content"`
	ContentHTML string `json:"content_html"`
}

// CommentGroup 一个顶层评论及其回复，回复按创建时间倒序
type CommentGroup struct {
	Node    *CommentNode   `json:"node"`
	Replies []*CommentNode `json:"replies"`
}

type CommentTree struct {
	Roots []*CommentGroup `json:"roots"`
}
