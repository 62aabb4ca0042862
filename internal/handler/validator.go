package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"cat_adoption_server/pkg/enum/application/application_status_enum"
)

// Trans 定义全局翻译器 (导出供 response.go 使用)
var Trans ut.Translator

// InitTrans 初始化翻译器并注册自定义校验规则
// locale 参数指定需要初始化的语言，例如 "zh" 或 "en"
func InitTrans(locale string) (err error) {

	// 确保 Validator 已初始化
	// 在 Gin v1.9+ 中 binding.Validator 可能为 nil，需要先初始化
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	// 修改 gin 框架中的 Validator 引擎属性，实现自定制
	// binding.Validator.Engine() 返回的是 interface{}，需要断言为 *validator.Validate 类型
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {

		// 报错信息使用 json tag（如 application_id）而不是结构体字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			// 获取 json tag 的值，并处理可能存在的选项（如 "name,omitempty"）
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			// 如果 json tag 是 "-"，说明该字段被忽略，返回空字符串
			if name == "-" {
				return ""
			}
			// 返回 json tag 的名称
			return name
		})

		if err = v.RegisterValidation("app_status", validateAppStatus); err != nil {
			return err
		}

		zhT := zh.New() // 中文翻译器
		enT := en.New() // 英文翻译器
		// 第一个参数是 fallback 语言
		uni := ut.New(enT, zhT, enT)

		// locale 通常传 "zh"
		var ok bool
		// 根据传入的 locale 获取对应的翻译器
		Trans, ok = uni.GetTranslator(locale)
		if !ok {
			// 如果获取失败，返回错误
			return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
		}

		// 注册翻译器
		// 根据 locale 注册对应的默认翻译规则
		switch locale {
		case "en":
			// 注册英文翻译
			err = en_translations.RegisterDefaultTranslations(v, Trans)
		case "zh":
			// 注册中文翻译
			err = zh_translations.RegisterDefaultTranslations(v, Trans)
		default:
			// 默认注册英文翻译
			err = en_translations.RegisterDefaultTranslations(v, Trans)
		}
		if err != nil {
			return err
		}
		err = registerAppStatusTranslation(v, locale)
	}
	return
}

// validateAppStatus 校验申请状态取值
func validateAppStatus(fl validator.FieldLevel) bool {
	return application_status_enum.Status(fl.Field().String()).IsValid()
}

func registerAppStatusTranslation(v *validator.Validate, locale string) error {
	text := "{0} must be one of pending, reviewing, trial, accepted, rejected, cancelled"
	if locale == "zh" {
		text = "{0}必须是pending、reviewing、trial、accepted、rejected、cancelled之一"
	}
	return v.RegisterTranslation("app_status", Trans,
		func(ut ut.Translator) error {
			return ut.Add("app_status", text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("app_status", fe.Field())
			return t
		},
	)
}

// RemoveTopStruct 去除提示信息中的结构体名称，如 "UpdateStatusRequest.status" -> "status"
func RemoveTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string)
	for field, err := range fields {
		// 截取点号之后的部分
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// defaultValidator 是一个实现了 StructValidator 接口的结构体
// 用于在 Gin v1.9+ 中初始化 binding.Validator
type defaultValidator struct {
	validator *validator.Validate
}

// ValidateStruct 实现 StructValidator 接口的 ValidateStruct 方法
func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Struct(obj)
}

// Engine 实现 StructValidator 接口的 Engine 方法
func (v *defaultValidator) Engine() interface{} {
	return v.validator
}
