package logic

import (
	"context"
	"errors"
	"time"

	"usof/dao/mysql"
	"usof/dao/redis"
	"usof/models"
	"usof/pkg/errno"
	"usof/pkg/errorx"
	"usof/pkg/jwt"
	"usof/pkg/mailer"
	"usof/pkg/snowflake"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SignUp 注册：用户与邮箱确认令牌在同一事务写入，提交后异步发确认邮件
// error 类型说明：
//   - *errorx.CodeError: 业务错误（登录名或邮箱已占用）
//   - 系统错误统一转换为 errorx.ErrServerBusy
func SignUp(ctx context.Context, p *models.ParamSignUp) (*models.User, error) {
	if err := mysql.CheckUserExist(ctx, p.Login, p.Email); err != nil {
		if errors.Is(err, errno.ErrorUserExist) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error("mysql.CheckUserExist failed",
			zap.String("login", p.Login),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	hash, err := mysql.EncryptPassword(p.Password)
	if err != nil {
		zap.L().Error("mysql.EncryptPassword failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	u := &models.User{
		UserID:       snowflake.GenID(),
		Login:        p.Login,
		PasswordHash: hash,
		FullName:     p.FullName,
		Email:        p.Email,
		Role:         models.RoleUser,
	}
	token := &models.EmailToken{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(mailTokenTTL()),
	}
	if err = mysql.InsertUser(ctx, u, token); err != nil {
		// 并发注册时唯一索引兜底
		if errors.Is(err, errno.ErrorUserExist) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error("mysql.InsertUser failed",
			zap.Int64("user_id", u.UserID),
			zap.String("login", p.Login),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	link := baseURL() + "/api/v1/auth/confirm-email/" + token.Token
	mailer.SendAsync(mailer.ConfirmEmailMessage(u.Email, link))
	return u, nil
}

// ConfirmEmail 令牌不存在或过期返回 errorx.ErrTokenExpired
func ConfirmEmail(ctx context.Context, token string) error {
	uid, err := mysql.ConfirmEmail(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, errno.ErrorTokenInvalid) {
			return errorx.ErrTokenExpired
		}
		zap.L().Error("mysql.ConfirmEmail failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	evictUsers(ctx, uid)
	return nil
}

// Login login 与 email 必须属于同一用户；邮箱未确认时拒绝登录
func Login(ctx context.Context, p *models.ParamLogin) (aToken, rToken string, user *models.User, err error) {
	user, err = mysql.GetUserByLoginAndEmail(ctx, p.Login, p.Email)
	if err != nil {
		zap.L().Error("mysql.GetUserByLoginAndEmail failed",
			zap.String("login", p.Login),
			zap.Error(err))
		return "", "", nil, errorx.ErrServerBusy
	}
	if user == nil {
		return "", "", nil, errorx.ErrInvalidPassword
	}
	if err = mysql.VerifyPassword(user.PasswordHash, p.Password); err != nil {
		return "", "", nil, errorx.ErrInvalidPassword
	}
	if !user.EmailConfirmed {
		return "", "", nil, errorx.ErrEmailNotConfirmed
	}

	aToken, rToken, err = issueTokens(ctx, user)
	if err != nil {
		return "", "", nil, err
	}
	return aToken, rToken, user, nil
}

// issueTokens 生成双 token 并写入 redis，实现单点登录和登出
func issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	aToken, rToken, err := jwt.GenToken(user.UserID, user.Role)
	if err != nil {
		zap.L().Error("jwt.GenToken failed",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	err = redis.SetUserToken(ctx, user.UserID, aToken, rToken, jwt.AccessTokenExpireDuration, jwt.RefreshTokenExpireDuration)
	if err != nil {
		zap.L().Error("redis.SetUserToken failed",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	return aToken, rToken, nil
}

// RefreshToken refresh token 必须是 redis 中当前有效的那一个，登出后旧 token 失效
func RefreshToken(ctx context.Context, rToken string) (newAToken, newRToken string, err error) {
	uid, err := jwt.ParseRefreshToken(rToken)
	if err != nil {
		return "", "", errorx.ErrInvalidToken
	}
	stored, err := redis.GetUserRefreshToken(ctx, uid)
	if err != nil {
		if errors.Is(err, errno.ErrorCacheMiss) {
			return "", "", errorx.ErrInvalidToken
		}
		zap.L().Error("redis.GetUserRefreshToken failed",
			zap.Int64("user_id", uid),
			zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	if stored != rToken {
		return "", "", errorx.ErrInvalidToken
	}

	// 角色可能已被管理员修改，按数据库最新值签发
	user, err := mysql.GetUserByID(ctx, uid)
	if err != nil {
		zap.L().Error("mysql.GetUserByID failed",
			zap.Int64("user_id", uid),
			zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	if user == nil {
		return "", "", errorx.ErrInvalidToken
	}
	return issueTokens(ctx, user)
}

func Logout(ctx context.Context, uid int64) error {
	if err := redis.DeleteUserToken(ctx, uid); err != nil {
		zap.L().Error("redis.DeleteUserToken failed",
			zap.Int64("user_id", uid),
			zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// StartPasswordReset 邮箱不存在时同样返回成功，不暴露注册情况
func StartPasswordReset(ctx context.Context, email string) error {
	user, err := mysql.GetUserByEmail(ctx, email)
	if err != nil {
		zap.L().Error("mysql.GetUserByEmail failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if user == nil {
		zap.L().Info("password reset for unknown email", zap.String("email", email))
		return nil
	}
	t := &models.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.UserID,
		ExpiresAt: time.Now().Add(mailTokenTTL()),
	}
	if err = mysql.CreatePasswordResetToken(ctx, t); err != nil {
		zap.L().Error("mysql.CreatePasswordResetToken failed",
			zap.Int64("user_id", user.UserID),
			zap.Error(err))
		return errorx.ErrServerBusy
	}
	link := frontendURL() + "/password-reset/" + t.Token
	mailer.SendAsync(mailer.PasswordResetMessage(user.Email, link))
	return nil
}

// ConfirmPasswordReset 改密成功后清掉该用户的登录态
func ConfirmPasswordReset(ctx context.Context, token, password string) error {
	hash, err := mysql.EncryptPassword(password)
	if err != nil {
		zap.L().Error("mysql.EncryptPassword failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	uid, err := mysql.ResetPassword(ctx, token, hash, time.Now())
	if err != nil {
		if errors.Is(err, errno.ErrorTokenInvalid) {
			return errorx.ErrTokenExpired
		}
		zap.L().Error("mysql.ResetPassword failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err = redis.DeleteUserToken(ctx, uid); err != nil {
		zap.L().Warn("redis.DeleteUserToken failed after password reset",
			zap.Int64("user_id", uid),
			zap.Error(err))
	}
	return nil
}
