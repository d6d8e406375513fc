package controller

import (
	"errors"
	"net/http"

	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context 中保存当前用户信息的 Key
// 定义在 controller 包中，middlewares 引用它，避免循环引用
const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// ResponseData 统一响应结构体 (用于 Swagger 文档生成)
type ResponseData struct {
	Code int         `json:"code"`           // 业务响应状态码
	Msg  interface{} `json:"msg"`            // 提示信息
	Data interface{} `json:"data,omitempty"` // 数据
}

// ResponseError 返回错误响应，HTTP 状态码由业务码决定
func ResponseError(c *gin.Context, e *errorx.CodeError) {
	c.JSON(errorx.HTTPStatus(e.Code), &ResponseData{
		Code: e.Code,
		Msg:  e.Msg,
	})
}

// ResponseErrorWithMsg 返回带自定义消息的错误响应，msg 可以是字段级的校验信息
func ResponseErrorWithMsg(c *gin.Context, code int, msg interface{}) {
	c.JSON(errorx.HTTPStatus(code), &ResponseData{
		Code: code,
		Msg:  msg,
	})
}

func ResponseSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &ResponseData{
		Code: errorx.CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

func ResponseCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &ResponseData{
		Code: errorx.CodeSuccess,
		Msg:  "success",
		Data: data,
	})
}

// HandleError 统一错误出口
// logic 层返回的 *errorx.CodeError 原样透传，其他错误记录日志后按服务繁忙处理
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		ResponseError(c, codeErr)
		return
	}
	zap.L().Error("unexpected error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	ResponseError(c, errorx.ErrServerBusy)
}
