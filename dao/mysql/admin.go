package mysql

import (
	"context"
	"fmt"

	"usof/models"
)

// Dashboard 各表行数
type Dashboard struct {
	Users      int64 `json:"users"`
	Posts      int64 `json:"posts"`
	Comments   int64 `json:"comments"`
	Categories int64 `json:"categories"`
	Reactions  int64 `json:"reactions"`
}

func GetDashboard(ctx context.Context) (*Dashboard, error) {
	d := new(Dashboard)
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &d.Users},
		{&models.Post{}, &d.Posts},
		{&models.Comment{}, &d.Comments},
		{&models.Category{}, &d.Categories},
		{&models.Reaction{}, &d.Reactions},
	}
	for _, c := range counts {
		if err := db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("dashboard count failed: %w", err)
		}
	}
	return d, nil
}
