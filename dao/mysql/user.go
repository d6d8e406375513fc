package mysql

import (
	"context"
	"errors"
	"fmt"

	"usof/models"
	"usof/pkg/errno"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CheckUserExist login 或 email 已被占用时返回 errno.ErrorUserExist
func CheckUserExist(ctx context.Context, login, email string) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("login = ? OR email = ?", login, email).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check user exist failed: %w", err)
	}
	if count > 0 {
		return errno.ErrorUserExist
	}
	return nil
}

// EncryptPassword bcrypt 哈希
func EncryptPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword 密码不匹配时返回非 nil
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// InsertUser 插入用户，token 非空时在同一事务里写入邮箱确认令牌
func InsertUser(ctx context.Context, user *models.User, token *models.EmailToken) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errno.ErrorUserExist
			}
			return fmt.Errorf("insert user failed: %w", err)
		}
		if token == nil {
			return nil
		}
		token.UserID = user.UserID
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("insert email token failed: %w", err)
		}
		return nil
	})
}

// GetUserByID 查不到返回 nil, nil
func GetUserByID(ctx context.Context, uid int64) (*models.User, error) {
	user := new(models.User)
	err := db.WithContext(ctx).Where("user_id = ?", uid).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return user, nil
}

// GetUserByLoginAndEmail 登录时 login 与 email 必须同属一个用户
func GetUserByLoginAndEmail(ctx context.Context, login, email string) (*models.User, error) {
	user := new(models.User)
	err := db.WithContext(ctx).Where("login = ? AND email = ?", login, email).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by login failed: %w", err)
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := db.WithContext(ctx).Where("email = ?", email).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return user, nil
}

func GetUsersByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	users := make([]*models.User, 0, len(ids))
	if err := db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query users by ids failed: %w", err)
	}
	return users, nil
}

// ListUsers 按注册时间倒序
func ListUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0)
	if err := db.WithContext(ctx).Order("create_time DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

// UpdateUser 按列更新，email 冲突返回 errno.ErrorUserExist
func UpdateUser(ctx context.Context, uid int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", uid).Updates(fields)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errno.ErrorUserExist
		}
		return fmt.Errorf("update user failed: %w", res.Error)
	}
	return nil
}
