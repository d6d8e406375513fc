package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"usof/models"
	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// 定义全局翻译器
var trans ut.Translator

// InitTrans 初始化校验器的翻译器，locale 取 "zh" 或 "en"
func InitTrans(locale string) (err error) {
	// Gin v1.9+ 中 binding.Validator 可能为 nil
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("binding validator engine is not *validator.Validate")
	}

	// 错误信息使用 json tag 作为字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	zhT := zh.New()
	enT := en.New()
	// 第一个参数是 fallback
	uni := ut.New(enT, zhT, enT)

	trans, ok = uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
	}

	switch locale {
	case "zh":
		err = zh_translations.RegisterDefaultTranslations(v, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return err
	}

	// 两次密码一致性属于跨字段校验，用结构体级校验实现
	v.RegisterStructValidation(SignUpParamStructLevelValidation, models.ParamSignUp{})
	v.RegisterStructValidation(UserCreateParamStructLevelValidation, models.ParamUserCreate{})
	return nil
}

// removeTopStruct 去除提示信息中的结构体名称，"ParamSignUp.login" -> "login"
func removeTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string)
	for field, err := range fields {
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// SignUpParamStructLevelValidation 校验密码和确认密码一致
func SignUpParamStructLevelValidation(sl validator.StructLevel) {
	su := sl.Current().Interface().(models.ParamSignUp)
	if su.Password != su.PasswordConfirm {
		// 复用 eqfield 规则名，沿用已有翻译
		sl.ReportError(su.PasswordConfirm, "password_confirm", "PasswordConfirm", "eqfield", "password")
	}
}

func UserCreateParamStructLevelValidation(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.ParamUserCreate)
	if p.Password != p.PasswordConfirm {
		sl.ReportError(p.PasswordConfirm, "password_confirm", "PasswordConfirm", "eqfield", "password")
	}
}

// handleBindError 参数绑定失败时的响应：校验错误翻译成字段级信息，其他错误（JSON 格式等）返回参数错误
func handleBindError(c *gin.Context, err error) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || trans == nil {
		ResponseError(c, errorx.ErrInvalidParam)
		return
	}
	ResponseErrorWithMsg(c, errorx.CodeInvalidParam, removeTopStruct(errs.Translate(trans)))
}

// defaultValidator 实现 binding.StructValidator，用于 binding.Validator 为空时兜底
type defaultValidator struct {
	validator *validator.Validate
}

func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Struct(obj)
}

func (v *defaultValidator) Engine() interface{} {
	return v.validator
}
