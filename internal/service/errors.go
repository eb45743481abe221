package service

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials 登录失败统一返回，不区分用户不存在和密码错误。
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError 请求内容违反业务规则（如线圈主次组成不合法）。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建校验错误
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 引用的记录不存在。
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NewNotFoundError 创建不存在错误
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IntegrityError 目录数据配置不完整（如硅钢片缺少配套骨架）。
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Message
}

// NewIntegrityError 创建完整性错误
func NewIntegrityError(format string, args ...interface{}) *IntegrityError {
	return &IntegrityError{Message: fmt.Sprintf(format, args...)}
}
