package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"usof/dao/mysql"
	"usof/dao/redis"
	"usof/models"
	"usof/pkg/avatar"
	"usof/pkg/errno"
	"usof/pkg/errorx"
	"usof/pkg/snowflake"

	"go.uber.org/zap"
)

// evictUsers 资料或评分变化后失效缓存，失败只记日志，缓存会按 TTL 过期
func evictUsers(ctx context.Context, ids ...int64) {
	if err := redis.DelUser(ctx, ids...); err != nil {
		zap.L().Warn("redis.DelUser failed", zap.Int64s("user_ids", ids), zap.Error(err))
	}
}

// canManageUser 本人或管理员
func canManageUser(viewer models.Viewer, uid int64) bool {
	return viewer.IsAdmin() || (!viewer.IsAnonymous() && viewer.UserID == uid)
}

// GetUser 读穿缓存：先查 redis，未命中回源数据库再回填
func GetUser(ctx context.Context, uid int64) (*models.User, error) {
	u, err := redis.GetUser(ctx, uid)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, errno.ErrorCacheMiss) {
		zap.L().Warn("redis.GetUser failed, falling back to db",
			zap.Int64("user_id", uid),
			zap.Error(err))
	}

	u, err = mysql.GetUserByID(ctx, uid)
	if err != nil {
		zap.L().Error("mysql.GetUserByID failed",
			zap.Int64("user_id", uid),
			zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if u == nil {
		return nil, errorx.ErrUserNotFound
	}
	if err = redis.SetUser(ctx, u, userCacheTTL()); err != nil {
		zap.L().Warn("redis.SetUser failed", zap.Int64("user_id", uid), zap.Error(err))
	}
	return u, nil
}

func GetUserList(ctx context.Context) ([]*models.User, error) {
	users, err := mysql.ListUsers(ctx)
	if err != nil {
		zap.L().Error("mysql.ListUsers failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return users, nil
}

// CreateUser 管理员创建用户，邮箱直接视为已确认
func CreateUser(ctx context.Context, p *models.ParamUserCreate) (*models.User, error) {
	if err := mysql.CheckUserExist(ctx, p.Login, p.Email); err != nil {
		if errors.Is(err, errno.ErrorUserExist) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error("mysql.CheckUserExist failed", zap.String("login", p.Login), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	hash, err := mysql.EncryptPassword(p.Password)
	if err != nil {
		zap.L().Error("mysql.EncryptPassword failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	u := &models.User{
		UserID:         snowflake.GenID(),
		Login:          p.Login,
		PasswordHash:   hash,
		FullName:       p.FullName,
		Email:          p.Email,
		Role:           p.Role,
		EmailConfirmed: true,
	}
	if err = mysql.InsertUser(ctx, u, nil); err != nil {
		if errors.Is(err, errno.ErrorUserExist) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error("mysql.InsertUser failed", zap.String("login", p.Login), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return u, nil
}

// UpdateUser 本人或管理员可改资料，只有管理员能改角色
func UpdateUser(ctx context.Context, viewer models.Viewer, uid int64, p *models.ParamUserUpdate) (*models.User, error) {
	if !canManageUser(viewer, uid) {
		return nil, errorx.ErrForbidden
	}
	if p.Role != nil && !viewer.IsAdmin() {
		return nil, errorx.ErrAdminOnlyRole
	}

	fields := make(map[string]interface{})
	if p.FullName != nil {
		fields["full_name"] = *p.FullName
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Role != nil {
		fields["role"] = *p.Role
	}
	if len(fields) == 0 {
		return nil, errorx.ErrNothingToUpdate
	}

	if err := ensureUser(ctx, uid); err != nil {
		return nil, err
	}
	if err := mysql.UpdateUser(ctx, uid, fields); err != nil {
		if errors.Is(err, errno.ErrorUserExist) {
			return nil, errorx.ErrUserExist
		}
		zap.L().Error("mysql.UpdateUser failed", zap.Int64("user_id", uid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	// 角色写在 access token 里，改角色后旧 token 作废，重新登录拿到新角色
	if p.Role != nil {
		if err := redis.DeleteUserToken(ctx, uid); err != nil {
			zap.L().Warn("redis.DeleteUserToken failed", zap.Int64("user_id", uid), zap.Error(err))
		}
	}
	evictUsers(ctx, uid)
	return GetUser(ctx, uid)
}

func ensureUser(ctx context.Context, uid int64) error {
	u, err := mysql.GetUserByID(ctx, uid)
	if err != nil {
		zap.L().Error("mysql.GetUserByID failed", zap.Int64("user_id", uid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if u == nil {
		return errorx.ErrUserNotFound
	}
	return nil
}

// DeleteUser 删除用户
// 参数:
//   viewer: 当前登录用户，本人或管理员才能删除
//   uid: 被删除的用户
//
// 业务规则:
//   1. 一个事务内删除该用户的帖子、评论、反应、收藏和令牌
//   2. 被该用户反应过的目标重新计数，受影响的作者重算评分
//   3. 删除 redis 中的登录态，路由上的 ForgetUserSession 负责清掉本地 token 缓存
//   4. 失效用户缓存
func DeleteUser(ctx context.Context, viewer models.Viewer, uid int64) error {
	if !canManageUser(viewer, uid) {
		return errorx.ErrForbidden
	}
	// 1/2. 级联删除与重算在 dao 层同一事务中完成
	if err := mysql.DeleteUser(ctx, uid); err != nil {
		if errors.Is(err, errno.ErrorRecordNotExist) {
			return errorx.ErrUserNotFound
		}
		zap.L().Error("mysql.DeleteUser failed", zap.Int64("user_id", uid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	// 3. 登出
	if err := redis.DeleteUserToken(ctx, uid); err != nil {
		zap.L().Warn("redis.DeleteUserToken failed", zap.Int64("user_id", uid), zap.Error(err))
	}
	// 4. 失效缓存
	evictUsers(ctx, uid)
	return nil
}

// UploadAvatar 缩放后写入上传目录，头像地址为 url_prefix/文件名
func UploadAvatar(ctx context.Context, viewer models.Viewer, uid int64, r io.Reader) (*models.User, error) {
	if !canManageUser(viewer, uid) {
		return nil, errorx.ErrForbidden
	}
	if err := ensureUser(ctx, uid); err != nil {
		return nil, err
	}
	cfg := uploadConfig()
	data, ext, err := avatar.Thumbnail(r, cfg.AvatarSize)
	if err != nil {
		if errors.Is(err, avatar.ErrUnsupportedImage) {
			return nil, errorx.ErrInvalidParam.WithMsg("仅支持 jpeg / png / gif 图片")
		}
		zap.L().Error("avatar.Thumbnail failed", zap.Int64("user_id", uid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	name := fmt.Sprintf("%d_%d%s", uid, time.Now().UnixNano(), ext)
	if _, err = avatar.Save(cfg.Dir, name, data); err != nil {
		zap.L().Error("avatar.Save failed", zap.String("dir", cfg.Dir), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if err = mysql.UpdateUser(ctx, uid, map[string]interface{}{"avatar_url": cfg.URLPrefix + "/" + name}); err != nil {
		zap.L().Error("mysql.UpdateUser avatar failed", zap.Int64("user_id", uid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	evictUsers(ctx, uid)
	return GetUser(ctx, uid)
}

// GetUserFavorites 本人或管理员可见；关闭的帖子只对作者和管理员保留
func GetUserFavorites(ctx context.Context, viewer models.Viewer, uid int64) ([]*models.ApiPostDetail, error) {
	if !canManageUser(viewer, uid) {
		return nil, errorx.ErrForbidden
	}
	posts, err := mysql.ListFavoritePosts(ctx, uid)
	if err != nil {
		zap.L().Error("mysql.ListFavoritePosts failed", zap.Int64("user_id", uid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	visible := posts[:0]
	for _, p := range posts {
		if canSeePost(viewer, p) {
			visible = append(visible, p)
		}
	}
	return decoratePosts(ctx, visible)
}

// GetUserPosts 本人或管理员查看某用户的全部帖子；Limit 为 0 时不分页
func GetUserPosts(ctx context.Context, viewer models.Viewer, uid int64, p *models.ParamUserPosts) (*models.PostPage, error) {
	if !canManageUser(viewer, uid) {
		return nil, errorx.ErrForbidden
	}
	q := &mysql.PostQuery{
		Page:     p.Page,
		Limit:    p.Limit,
		Sort:     defaultString(p.Sort, mysql.SortDate),
		Desc:     p.Order != "asc",
		Status:   models.StatusAll,
		AuthorID: uid,
	}
	return queryPostPage(ctx, q)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
