package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError 單一欄位的驗證錯誤
type ValidationError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// ValidationRule 欄位的自定義錯誤訊息
type ValidationRule struct {
	Tag     string
	Message string
}

// ValidationErrors 多個欄位的驗證錯誤
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// CustomValidator 是一個基於 go-playground/validator 的客製化驗證器
type CustomValidator struct {
	validator   *validator.Validate
	lock        sync.RWMutex
	customRules map[string]map[string]ValidationRule // fieldName -> tagName -> rule
}

var (
	validatorInstance *CustomValidator
	validatorOnce     sync.Once
)

// GetValidator 返回全局驗證器實例
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		validatorInstance = NewCustomValidator()
	})
	return validatorInstance
}

// NewCustomValidator 創建一個新的客製化驗證器實例，已註冊自定義驗證
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// 使用 JSON 標籤作為欄位名稱
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	cv := &CustomValidator{
		validator:   v,
		customRules: make(map[string]map[string]ValidationRule),
	}
	registerCustomValidations(cv)
	return cv
}

// Validate 驗證給定的結構體，沒有錯誤時返回 nil
func (v *CustomValidator) Validate(obj interface{}) error {
	if err := v.validator.Struct(obj); err != nil {
		return v.translateErrors(err)
	}
	return nil
}

// RegisterValidation 註冊自定義驗證函數
func (v *CustomValidator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validator.RegisterValidation(tag, fn)
}

// RegisterCustomRule 註冊自定義錯誤訊息
func (v *CustomValidator) RegisterCustomRule(field string, rule ValidationRule) {
	v.lock.Lock()
	defer v.lock.Unlock()

	if _, exists := v.customRules[field]; !exists {
		v.customRules[field] = make(map[string]ValidationRule)
	}
	v.customRules[field][rule.Tag] = rule
}

// translateErrors 將驗證錯誤轉換為客製化格式
func (v *CustomValidator) translateErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := make(ValidationErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		tag := e.Tag()

		// 檢查是否有自定義錯誤訊息
		var message string
		v.lock.RLock()
		if fieldRules, exists := v.customRules[field]; exists {
			if rule, exists := fieldRules[tag]; exists {
				message = rule.Message
			}
		}
		v.lock.RUnlock()

		// 如果沒有自定義訊息，使用默認錯誤訊息
		if message == "" {
			message = getDefaultErrorMessage(e.Namespace(), field, tag, e.Param(), e.Kind())
		}

		result = append(result, ValidationError{
			Field:   field,
			Tag:     tag,
			Value:   e.Value(),
			Message: message,
		})
	}

	return result
}

// getDefaultErrorMessage 獲取默認錯誤訊息
func getDefaultErrorMessage(namespace, field, tag, param string, kind reflect.Kind) string {
	// 陣列元素的錯誤以 field[i] 呈現
	if i := strings.Index(namespace, "."); i >= 0 {
		field = namespace[i+1:]
	}

	switch tag {
	case "required":
		return field + "為必填欄位"
	case "min", "gte":
		if kind == reflect.Slice || kind == reflect.String {
			return fmt.Sprintf("%s長度必須至少為%s", field, param)
		}
		return fmt.Sprintf("%s必須大於或等於%s", field, param)
	case "max", "lte":
		if kind == reflect.Slice || kind == reflect.String {
			return fmt.Sprintf("%s最多只能有%s個", field, param)
		}
		return fmt.Sprintf("%s必須小於或等於%s", field, param)
	case "unique":
		return field + "不可重複"
	case "lotto_number":
		return field + "必須介於1到45之間"
	default:
		return field + "格式不正確"
	}
}
