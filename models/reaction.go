package models

import "time"

// 反应目标类型
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// 反应类型
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction 对应 likes 表
// (author_id, target_type, target_id) 唯一，同一用户对同一目标最多一条
type Reaction struct {
	ID         int64     `json:"id,string" gorm:"column:reaction_id;primaryKey;autoIncrement:false"`
	AuthorID   int64     `json:"author_id,string" gorm:"column:author_id;not null;uniqueIndex:idx_reaction_actor_target,priority:1"`
	TargetType string    `json:"target_type" gorm:"column:target_type;size:16;not null;uniqueIndex:idx_reaction_actor_target,priority:2;index:idx_reaction_target,priority:1"`
	TargetID   int64     `json:"target_id,string" gorm:"column:target_id;not null;uniqueIndex:idx_reaction_actor_target,priority:3;index:idx_reaction_target,priority:2"`
	Type       string    `json:"type" gorm:"column:type;size:16;not null"`
	CreateTime time.Time `json:"create_time" gorm:"column:create_time;autoCreateTime"`
}

func (Reaction) TableName() string {
	return "likes"
}

// ReactionTarget 被反应的帖子或评论
type ReactionTarget struct {
	Kind string
	ID   int64
}

// Counters 目标上的点赞/点踩计数
type Counters struct {
	Likes    int64 `json:"likes_count"`
	Dislikes int64 `json:"dislikes_count"`
}

// ReactionResult 一次反应变更后的结果
type ReactionResult struct {
	Reaction     *Reaction `json:"reaction,omitempty"`
	Counters     Counters  `json:"counters"`
	AuthorRating int64     `json:"author_rating"`
}
