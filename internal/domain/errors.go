// Package domain 定义了审计日志工具的核心领域错误。
package domain

import "errors"

// 领域错误定义
// 这些错误种类在各层之间传递，最终由命令行入口统一处理（打印 + 退出码）。

var (
	// ========== 配置相关错误 ==========

	// ErrConfiguration 表示配置文件缺失或内容不是有效的映射
	ErrConfiguration = errors.New("configuration error")

	// ========== 参数相关错误 ==========

	// ErrArgument 表示未知命令、未知参数（严格模式）或缺少必需参数
	ErrArgument = errors.New("argument error")

	// ========== I/O 相关错误 ==========

	// ErrIO 表示写入日志目标（文件或标准错误）失败
	ErrIO = errors.New("io error")
)

// Error 是带有错误种类的领域错误。
// Msg 是面向用户的描述，会原样出现在 "ERROR: <msg>" 中；
// Err 是可选的底层原因。
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap 返回底层原因，便于 errors.Is / errors.As 继续向下匹配。
func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按错误种类匹配，例如 errors.Is(err, domain.ErrArgument)。
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// ConfigurationError 创建配置错误。
func ConfigurationError(msg string, cause error) error {
	return &Error{Kind: ErrConfiguration, Msg: msg, Err: cause}
}

// ArgumentError 创建参数错误。参数错误没有底层原因。
func ArgumentError(msg string) error {
	return &Error{Kind: ErrArgument, Msg: msg}
}

// IOError 创建 I/O 错误。
func IOError(msg string, cause error) error {
	return &Error{Kind: ErrIO, Msg: msg, Err: cause}
}

// KindOf 返回错误种类的短名称，用于诊断日志字段。
// 无法识别的错误返回 "internal"。
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrArgument):
		return "argument"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "internal"
	}
}
