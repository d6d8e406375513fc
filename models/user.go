package models

import "time"

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 对应 users 表
// Rating 是由收到的点赞/点踩推导出的缓存值，随时可以重新计算
type User struct {
	UserID         int64     `json:"id,string" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Rating         int64     `json:"rating" gorm:"column:rating;not null;default:0"`
	Login          string    `json:"login" gorm:"column:login;uniqueIndex;size:50;not null"`
	PasswordHash   string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	FullName       string    `json:"full_name" gorm:"column:full_name;size:100;not null"`
	Email          string    `json:"email" gorm:"column:email;uniqueIndex;size:255;not null"`
	Role           string    `json:"role" gorm:"column:role;size:16;not null;default:user"`
	AvatarURL      string    `json:"avatar_url" gorm:"column:avatar_url;size:255"`
	EmailConfirmed bool      `json:"email_confirmed" gorm:"column:email_confirmed;not null;default:false"`
	CreateTime     time.Time `json:"create_time" gorm:"column:create_time;autoCreateTime"`
	UpdateTime     time.Time `json:"update_time" gorm:"column:update_time;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Viewer 当前请求的访问者，匿名访问时 UserID 为 0
type Viewer struct {
	UserID int64
	Role   string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == 0
}

// EmailToken 邮箱确认令牌
type EmailToken struct {
	Token      string    `gorm:"column:token;primaryKey;size:64"`
	UserID     int64     `gorm:"column:user_id;index;not null"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime"`
}

func (EmailToken) TableName() string {
	return "email_tokens"
}

// PasswordResetToken 重置密码令牌
type PasswordResetToken struct {
	Token      string    `gorm:"column:token;primaryKey;size:64"`
	UserID     int64     `gorm:"column:user_id;index;not null"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
