package models

import "time"

// 帖子与评论的审核状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusAll      = "all"
)

// Post 对应 posts 表
// LikesCount / DislikesCount 是 likes 表的冗余计数，每次反应变更后全量重算
type Post struct {
	ID            int64     `json:"id,string" gorm:"column:post_id;primaryKey;autoIncrement:false"`
	AuthorID      int64     `json:"author_id,string" gorm:"column:author_id;index;not null"`
	LikesCount    int64     `json:"likes_count" gorm:"column:likes_count;not null;default:0"`
	DislikesCount int64     `json:"dislikes_count" gorm:"column:dislikes_count;not null;default:0"`
	Status        string    `json:"status" gorm:"column:status;size:16;index;not null;default:active"`
	Title         string    `json:"title" gorm:"column:title;size:255;not null"`
	Content       string    `json:"content" gorm:"column:content;type:text;not null"`
	CreateTime    time.Time `json:"create_time" gorm:"column:create_time;autoCreateTime;index"`
	UpdateTime    time.Time `json:"update_time" gorm:"column:update_time;autoUpdateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:UserID"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) IsActive() bool {
	return p.Status == StatusActive
}

// PostCategory posts 与 categories 的多对多关联
type PostCategory struct {
	PostID     int64 `gorm:"column:post_id;primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"column:category_id;primaryKey;autoIncrement:false;index"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}

// Favorite 用户收藏的帖子
type Favorite struct {
	UserID     int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	PostID     int64     `gorm:"column:post_id;primaryKey;autoIncrement:false;index"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ApiPostDetail 返回给客户端的帖子
type ApiPostDetail struct {
	*Post
	ContentHTML string      `json:"content_html"`
	Categories  []*Category `json:"categories"`
}

// PostPage 分页结果
type PostPage struct {
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Items []*ApiPostDetail `json:"items"`
}
