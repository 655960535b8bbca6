// Package errors 定义业务错误分类。
//
// 服务层返回的每个错误都带有一个 Kind，表现层据此决定 HTTP 状态码，
// 无需识别具体的业务哨兵错误。
package errors

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind string

const (
	KindValidation    Kind = "validation"    // 输入格式错误，未访问数据库
	KindConflict      Kind = "conflict"      // 唯一性或引用完整性冲突
	KindNotFound      Kind = "not_found"     // 必需的记录不存在
	KindPersistence   Kind = "persistence"   // 连接失败、语句失败等数据库错误
	KindAuthorization Kind = "authorization" // 即席查询被拒绝
)

// AppError 带分类的业务错误
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// New 创建业务错误（通常作为包级哨兵变量）
func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使 errors.Is(err, ErrXxx) 对 Wrap 后的副本同样成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap 返回携带底层错误的副本，哨兵本身不被修改
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

// Withf 返回替换了提示信息的副本
func (e *AppError) Withf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err}
}

// ErrPersistence 数据库错误的通用哨兵
var ErrPersistence = New(KindPersistence, "PERSISTENCE_ERROR", "数据库操作失败")

// Persistence 将数据库错误包装为 KindPersistence；已分类的错误原样返回
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return ErrPersistence.Wrap(err)
}

// KindOf 提取错误分类；未分类错误视为 KindPersistence
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// Details 返回底层错误信息，供持久化错误在响应中附带
func Details(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return ""
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
