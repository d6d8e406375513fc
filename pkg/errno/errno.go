package errno

import "errors"

// 数据访问层共享的哨兵错误，logic 层用 errors.Is 判断后转换成 errorx.CodeError
var (
	ErrorInvalidID        = errors.New("无效的ID")
	ErrorQueryFailed      = errors.New("查询失败")
	ErrorRecordNotExist   = errors.New("记录不存在")
	ErrorUserExist        = errors.New("用户已存在")
	ErrorReactionExist    = errors.New("反应已存在")
	ErrorReactionNotExist = errors.New("反应不存在")
	ErrorFavoriteExist    = errors.New("收藏已存在")
	ErrorFavoriteNotExist = errors.New("收藏不存在")
	ErrorCategoryExist    = errors.New("分类已存在")
	ErrorTokenInvalid     = errors.New("令牌无效或已过期")
	ErrorCacheMiss        = errors.New("缓存未命中")
)
