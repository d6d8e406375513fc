package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeError 带业务错误码的错误，logic 层返回，controller 层翻译成响应
type CodeError struct {
	Code int
	Msg  string
}

func (e *CodeError) Error() string {
	return e.Msg
}

func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// WithMsg 复用错误码，替换提示信息
func (e *CodeError) WithMsg(msg string) *CodeError {
	return &CodeError{Code: e.Code, Msg: msg}
}

// Is 按错误码比较，WithMsg 派生出的错误与原错误视为同一种
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

const (
	CodeSuccess           = 1000
	CodeInvalidParam      = 1001
	CodeUserExist         = 1002
	CodeUserNotExist      = 1003
	CodeInvalidPassword   = 1004
	CodeServerBusy        = 1005
	CodeNeedLogin         = 1006
	CodeInvalidToken      = 1007
	CodeNotFound          = 1008
	CodeForbidden         = 1009
	CodeConflict          = 1010
	CodeEmailNotConfirmed = 1011
	CodeRateLimitExceeded = 1012
	CodeTimeout           = 1013
)

var (
	ErrInvalidParam      = New(CodeInvalidParam, "请求参数错误")
	ErrUserExist         = New(CodeUserExist, "登录名或邮箱已被占用")
	ErrUserNotExist      = New(CodeUserNotExist, "用户不存在")
	ErrInvalidPassword   = New(CodeInvalidPassword, "用户名或密码错误")
	ErrServerBusy        = New(CodeServerBusy, "服务繁忙")
	ErrNeedLogin         = New(CodeNeedLogin, "需要登录")
	ErrInvalidToken      = New(CodeInvalidToken, "无效的Token")
	ErrNotFound          = New(CodeNotFound, "资源不存在")
	ErrForbidden         = New(CodeForbidden, "没有权限")
	ErrConflict          = New(CodeConflict, "资源冲突")
	ErrEmailNotConfirmed = New(CodeEmailNotConfirmed, "邮箱尚未确认")
	ErrRateLimitExceeded = New(CodeRateLimitExceeded, "请求过于频繁，请稍后再试")
	ErrTimeout           = New(CodeTimeout, "请求超时")

	ErrReactionExist    = ErrConflict.WithMsg("已经对该内容做出过反应")
	ErrReactionNotExist = ErrNotFound.WithMsg("尚未对该内容做出反应")
	ErrFavoriteExist    = ErrConflict.WithMsg("已经收藏过该帖子")
	ErrFavoriteNotExist = ErrNotFound.WithMsg("尚未收藏该帖子")
	ErrUserNotFound     = ErrNotFound.WithMsg("用户不存在")
	ErrPostNotExist     = ErrNotFound.WithMsg("帖子不存在")
	ErrCommentNotExist  = ErrNotFound.WithMsg("评论不存在")
	ErrCategoryNotExist = ErrNotFound.WithMsg("分类不存在")
	ErrCategoryExist    = ErrConflict.WithMsg("分类标题已存在")
	ErrPostInactive     = ErrForbidden.WithMsg("帖子已被关闭")
	ErrAdminEditContent = ErrForbidden.WithMsg("管理员不能修改帖子内容")
	ErrAdminOnlyStatus  = ErrForbidden.WithMsg("只有管理员可以修改状态")
	ErrAdminOnlyRole    = ErrForbidden.WithMsg("只有管理员可以修改角色")
	ErrTokenExpired     = ErrInvalidParam.WithMsg("令牌无效或已过期")
	ErrNothingToUpdate  = ErrInvalidParam.WithMsg("没有需要更新的字段")
)

// HTTPStatus 错误码对应的 HTTP 状态码
func HTTPStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNeedLogin, CodeInvalidToken, CodeInvalidPassword, CodeUserNotExist:
		return http.StatusUnauthorized
	case CodeForbidden, CodeEmailNotConfirmed:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUserExist, CodeConflict:
		return http.StatusConflict
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
