package models

import "time"

// Category 对应 categories 表，Slug 由 Title 派生
type Category struct {
	ID          int64     `json:"id,string" gorm:"column:category_id;primaryKey;autoIncrement:false"`
	Title       string    `json:"title" gorm:"column:title;uniqueIndex;size:100;not null"`
	Slug        string    `json:"slug" gorm:"column:slug;uniqueIndex;size:120"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	CreateTime  time.Time `json:"create_time" gorm:"column:create_time;autoCreateTime"`
	UpdateTime  time.Time `json:"update_time" gorm:"column:update_time;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
