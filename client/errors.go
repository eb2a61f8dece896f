package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError 非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
	Data       json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s (%s: %s)", e.StatusCode, e.Message, e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus 判断 err 是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized token 缺失、无效或过期
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsNotFound 资源不存在
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsEmailNotVerified 登录凭据正确但邮箱未验证
func IsEmailNotVerified(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		return false
	}
	var data struct {
		EmailVerificationRequired bool `json:"emailVerificationRequired"`
	}
	_ = json.Unmarshal(apiErr.Data, &data)
	return data.EmailVerificationRequired
}
