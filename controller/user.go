package controller

import (
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// TokenPair 登录和刷新返回的双 token
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user,omitempty"`
}

// SignUpHandler 处理用户注册请求
// @Summary 用户注册
// @Description 注册后发送邮箱确认邮件，确认前不能登录
// @Tags 认证相关
// @Accept application/json
// @Produce application/json
// @Param object body models.ParamSignUp true "注册参数"
// @Success 201 {object} ResponseData{data=models.User}
// @Failure 400 {object} ResponseData
// @Failure 409 {object} ResponseData
// @Router /auth/register [post]
func SignUpHandler(c *gin.Context) {
	p := new(models.ParamSignUp)
	if err := c.ShouldBindJSON(p); err != nil {
		handleBindError(c, err)
		return
	}
	u, err := logic.SignUp(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseCreated(c, u)
}

// ConfirmEmailHandler 邮箱确认
// @Summary 确认邮箱
// @Tags 认证相关
// @Produce application/json
// @Param token path string true "确认令牌"
// @Success 200 {object} ResponseData
// @Failure 400 {object} ResponseData
// @Router /auth/confirm-email/{token} [get]
func ConfirmEmailHandler(c *gin.Context) {
	if err := logic.ConfirmEmail(c.Request.Context(), c.Param("token")); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}

// LoginHandler 处理用户登录请求
// @Summary 用户登录
// @Description login 与 email 需属于同一用户
// @Tags 认证相关
// @Accept application/json
// @Produce application/json
// @Param object body models.ParamLogin true "登录参数"
// @Success 200 {object} ResponseData{data=TokenPair}
// @Failure 401 {object} ResponseData
// @Failure 403 {object} ResponseData
// @Router /auth/login [post]
func LoginHandler(c *gin.Context) {
	var p models.ParamLogin
	if err := c.ShouldBindJSON(&p); err != nil {
		handleBindError(c, err)
		return
	}
	aToken, rToken, user, err := logic.Login(c.Request.Context(), &p)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, &TokenPair{AccessToken: aToken, RefreshToken: rToken, User: user})
}

// RefreshTokenHandler 用 refresh token 换一对新 token
// @Summary 刷新 Token
// @Tags 认证相关
// @Accept application/json
// @Produce application/json
// @Param object body models.ParamRefreshToken true "refresh token"
// @Success 200 {object} ResponseData{data=TokenPair}
// @Failure 401 {object} ResponseData
// @Router /auth/refresh [post]
func RefreshTokenHandler(c *gin.Context) {
	var p models.ParamRefreshToken
	if err := c.ShouldBind(&p); err != nil {
		handleBindError(c, err)
		return
	}
	aToken, rToken, err := logic.RefreshToken(c.Request.Context(), p.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, &TokenPair{AccessToken: aToken, RefreshToken: rToken})
}

// LogoutHandler 删除 redis 中保存的 token，已签发的 token 随即失效
// @Summary 退出登录
// @Tags 认证相关
// @Produce application/json
// @Param Authorization header string true "Bearer 用户令牌"
// @Success 200 {object} ResponseData
// @Router /auth/logout [post]
// @Security ApiKeyAuth
func LogoutHandler(c *gin.Context) {
	uid, err := GetCurrentUser(c)
	if err != nil {
		ResponseError(c, errorx.ErrNeedLogin)
		return
	}
	if err = logic.Logout(c.Request.Context(), uid); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}

// PasswordResetHandler 发送重置密码邮件；邮箱不存在时同样返回成功
// @Summary 申请重置密码
// @Tags 认证相关
// @Accept application/json
// @Produce application/json
// @Param object body models.ParamPasswordResetStart true "邮箱"
// @Success 200 {object} ResponseData
// @Router /auth/password-reset [post]
func PasswordResetHandler(c *gin.Context) {
	var p models.ParamPasswordResetStart
	if err := c.ShouldBindJSON(&p); err != nil {
		handleBindError(c, err)
		return
	}
	if err := logic.StartPasswordReset(c.Request.Context(), p.Email); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}

// PasswordResetConfirmHandler 用邮件中的令牌设置新密码
// @Summary 确认重置密码
// @Tags 认证相关
// @Accept application/json
// @Produce application/json
// @Param token path string true "重置令牌"
// @Param object body models.ParamPasswordResetConfirm true "新密码"
// @Success 200 {object} ResponseData
// @Failure 400 {object} ResponseData
// @Router /auth/password-reset/{token} [post]
func PasswordResetConfirmHandler(c *gin.Context) {
	var p models.ParamPasswordResetConfirm
	if err := c.ShouldBindJSON(&p); err != nil {
		handleBindError(c, err)
		return
	}
	if err := logic.ConfirmPasswordReset(c.Request.Context(), c.Param("token"), p.Password); err != nil {
		HandleError(c, err)
		return
	}
	ResponseSuccess(c, nil)
}
