package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParamSignUp 注册请求参数，两次密码一致性由结构体级校验完成
type ParamSignUp struct {
	Login           string `json:"login" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=6,max=100"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FullName        string `json:"full_name" binding:"required,min=3,max=100"`
	Email           string `json:"email" binding:"required,email"`
}

// ParamLogin 登录需要同时提供 login 和 email
type ParamLogin struct {
	Login    string `json:"login" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ParamRefreshToken struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
}

type ParamPasswordResetStart struct {
	Email string `json:"email" binding:"required,email"`
}

type ParamPasswordResetConfirm struct {
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// ParamUserCreate 管理员创建用户，创建出的用户邮箱视为已确认
type ParamUserCreate struct {
	Login           string `json:"login" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=6,max=100"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FullName        string `json:"full_name" binding:"required,min=3,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Role            string `json:"role" binding:"required,oneof=user admin"`
}

// ParamUserUpdate 未出现的字段保持不变
type ParamUserUpdate struct {
	FullName *string `json:"full_name" binding:"omitempty,min=3,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
}

// ParamPostList 帖子列表查询参数
// Categories 为逗号分隔的分类 ID；若不是数字则按分类标题匹配
type ParamPostList struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Sort       string `form:"sort" binding:"omitempty,oneof=likes date"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
	Categories string `form:"categories"`
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive all"`
	Favorite   bool   `form:"favorite"`
}

// ParamUserPosts 某用户的帖子，Limit 为 0 表示不分页
type ParamUserPosts struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Sort  string `form:"sort" binding:"omitempty,oneof=likes date"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ParamFeed 多分类聚合查询
type ParamFeed struct {
	Categories string `form:"categories" binding:"required"`
	Match      string `form:"match" binding:"omitempty,oneof=any all"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive all"`
	Sort       string `form:"sort" binding:"omitempty,oneof=likes date"`
	Order      string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ParamPostCreate struct {
	Title      string `json:"title" binding:"required,min=3,max=255"`
	Content    string `json:"content" binding:"required,min=3"`
	Categories IDs    `json:"categories" binding:"required,min=1"`
}

// ParamPostUpdate 未出现的字段保持不变；Categories 出现时整体替换
type ParamPostUpdate struct {
	Title      *string `json:"title" binding:"omitempty,min=3,max=255"`
	Content    *string `json:"content" binding:"omitempty,min=3"`
	Categories *IDs    `json:"categories"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ParamStatus struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ParamCategoryCreate struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description"`
}

type ParamCategoryUpdate struct {
	Title       *string `json:"title" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
}

// ParamCommentCreate ParentID 指向同一帖子下的评论
type ParamCommentCreate struct {
	Content  string `json:"content" binding:"required,min=1"`
	ParentID *ID    `json:"parent_id"`
}

type ParamReaction struct {
	Type string `json:"type" binding:"omitempty,oneof=like dislike"`
}

// ID 同时接受 JSON 数字和字符串形式的雪花 ID
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(b))
	}
	*id = ID(n)
	return nil
}

// IDs ID 列表，元素可以是数字或字符串
type IDs []int64

func (ids *IDs) UnmarshalJSON(b []byte) error {
	var raw []ID
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(IDs, 0, len(raw))
	for _, id := range raw {
		out = append(out, int64(id))
	}
	*ids = out
	return nil
}

// ParseIDList 解析逗号分隔的 ID 列表，ok 为 false 表示存在非数字项
func ParseIDList(s string) (ids []int64, ok bool) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n <= 0 {
			return nil, false
		}
		ids = append(ids, n)
	}
	return ids, true
}
