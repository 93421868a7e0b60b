package utils

import (
	"github.com/go-playground/validator/v10"
)

// 號碼範圍
const (
	lottoMinNumber = 1
	lottoMaxNumber = 45
)

// registerCustomValidations 註冊所有自定義驗證函數到驗證器
func registerCustomValidations(v *CustomValidator) {
	// 註冊號碼範圍驗證
	_ = v.RegisterValidation("lotto_number", ValidateLottoNumber)
}

// ValidateLottoNumber 驗證號碼介於 1 到 45
func ValidateLottoNumber(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= lottoMinNumber && n <= lottoMaxNumber
}
