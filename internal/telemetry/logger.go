// Package telemetry 提供命令行工具自身的诊断日志。
// 诊断日志基于 Logrus，写入标准错误，与审计事件行完全分离：
// 审计行的格式是字节级约定，而诊断日志只用于排查问题。
// 本文件通过 Logrus Hook 为每条诊断日志注入本次调用的唯一标识，
// 便于把同一次命令执行产生的日志关联起来。
package telemetry

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InvocationHook 是一个 Logrus 钩子，为每条日志条目添加 invocation_id 字段。
// 同一个钩子实例在进程生命周期内使用同一个标识。
type InvocationHook struct {
	id string
}

// NewInvocationHook 创建一个新的 InvocationHook，并生成随机的调用标识（UUID v4）。
//
// 使用示例：
//
//	logger := logrus.New()
//	logger.AddHook(telemetry.NewInvocationHook())
func NewInvocationHook() *InvocationHook {
	return &InvocationHook{id: uuid.NewString()}
}

// ID 返回本次调用的标识。
func (h *InvocationHook) ID() string {
	return h.id
}

// Levels 返回该钩子应该触发的日志级别列表。
func (h *InvocationHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 在日志条目生成时被调用，写入 invocation_id 字段。
// 调用方已显式设置该字段时保持不变。
func (h *InvocationHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["invocation_id"]; ok {
		return nil
	}
	entry.Data["invocation_id"] = h.id
	return nil
}

// Options 描述诊断日志的输出方式。
type Options struct {
	// Verbose 为 true 时输出 debug 级别，否则只输出 warn 及以上
	Verbose bool
	// Format 日志格式，可选值：text（默认）、json
	Format string
}

// NewLogger 创建写入 w 的诊断日志记录器，并挂载 InvocationHook。
//
// 参数：
//   - w: 输出目标，通常为标准错误
//   - opts: 级别与格式选项
//
// 返回：
//   - *logrus.Logger: 配置好的日志记录器
func NewLogger(w io.Writer, opts Options) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	// 默认只输出警告及以上，正常运行时不会在标准错误上产生额外输出
	logger.SetLevel(logrus.WarnLevel)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.AddHook(NewInvocationHook())
	return logger
}
