package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usof/models"
	"usof/pkg/errno"

	"gorm.io/gorm"
)

// ConfirmEmail 令牌有效时标记邮箱已确认并删除令牌，返回用户 ID
func ConfirmEmail(ctx context.Context, token string, now time.Time) (userID int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := new(models.EmailToken)
		if err := tx.Where("token = ?", token).First(t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrorTokenInvalid
			}
			return fmt.Errorf("query email token failed: %w", err)
		}
		if !t.ExpiresAt.After(now) {
			return errno.ErrorTokenInvalid
		}
		if err := tx.Model(&models.User{}).Where("user_id = ?", t.UserID).
			Update("email_confirmed", true).Error; err != nil {
			return fmt.Errorf("confirm email failed: %w", err)
		}
		if err := tx.Where("token = ?", token).Delete(&models.EmailToken{}).Error; err != nil {
			return fmt.Errorf("delete email token failed: %w", err)
		}
		userID = t.UserID
		return nil
	})
	return userID, err
}

func CreatePasswordResetToken(ctx context.Context, t *models.PasswordResetToken) error {
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert password reset token failed: %w", err)
	}
	return nil
}

// ResetPassword 令牌有效时更新密码哈希并删除令牌
func ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) (userID int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := new(models.PasswordResetToken)
		if err := tx.Where("token = ?", token).First(t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrorTokenInvalid
			}
			return fmt.Errorf("query reset token failed: %w", err)
		}
		if !t.ExpiresAt.After(now) {
			return errno.ErrorTokenInvalid
		}
		if err := tx.Model(&models.User{}).Where("user_id = ?", t.UserID).
			Update("password_hash", passwordHash).Error; err != nil {
			return fmt.Errorf("update password failed: %w", err)
		}
		if err := tx.Where("user_id = ?", t.UserID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return fmt.Errorf("delete reset tokens failed: %w", err)
		}
		userID = t.UserID
		return nil
	})
	return userID, err
}
