package eventlog

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/oriys/auditcli/internal/domain"
)

// 输出通道
const (
	// ChannelFile 表示追加写入 Config.FilePath
	ChannelFile = "file"
	// ChannelStderr 表示写入标准错误；除 "file" 以外的任何取值都按此处理
	ChannelStderr = "stderr"
)

// Config 是事件日志的不可变配置。
type Config struct {
	// MinLevel 最小输出级别，未知名称按 info 处理
	MinLevel string
	// Channel 输出通道，"file" 或其他（标准错误）
	Channel string
	// FilePath 日志文件路径，Channel 为 "file" 时必填
	FilePath string
	// Format 输出格式标记，原样写入每一行，不影响渲染方式
	Format string
}

// Logger 按配置过滤、渲染并路由事件。
// Logger 不持有可变状态，也不持有打开的文件句柄：每次写文件都是
// 打开、追加、关闭。跨进程的行完整性依赖 O_APPEND 的原子追加。
type Logger struct {
	cfg    Config
	stderr io.Writer
	now    func() time.Time
}

// Option 用于定制 Logger。
type Option func(*Logger)

// WithStderr 替换标准错误输出目标。
func WithStderr(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.stderr = w
		}
	}
}

// WithClock 替换时间来源。
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// New 创建 Logger。
func New(cfg Config, opts ...Option) *Logger {
	l := &Logger{
		cfg:    cfg,
		stderr: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enabled 报告该级别的事件是否会被输出。
func (l *Logger) Enabled(level string) bool {
	return Enabled(level, l.cfg.MinLevel)
}

// Emit 输出一条事件。
// 低于最小级别的事件直接忽略并返回 nil；否则恰好向一个目标写入一行。
// 写入失败以 domain.ErrIO 种类的错误返回，不做重试。
func (l *Logger) Emit(level, message string, ctx *Fields) error {
	if !l.Enabled(level) {
		return nil
	}

	ev := Event{
		Timestamp: l.now(),
		Level:     level,
		Message:   message,
		Context:   ctx,
	}
	line, err := ev.Line(l.cfg.Format)
	if err != nil {
		return domain.IOError("encode log context", err)
	}

	if l.cfg.Channel == ChannelFile {
		return appendFile(l.cfg.FilePath, line)
	}
	if _, err := io.WriteString(l.stderr, line); err != nil {
		return domain.IOError("write log to stderr", err)
	}
	return nil
}

// Emit 按 cfg 输出一条事件，每次调用独立完成，不保留任何状态。
// 默认写入进程的标准错误并使用系统时钟，可通过 opts 替换。
func Emit(cfg Config, level, message string, ctx *Fields, opts ...Option) error {
	return New(cfg, opts...).Emit(level, message, ctx)
}

// appendFile 以追加模式打开文件（不存在则创建），单次写入整行后关闭。
func appendFile(path, line string) error {
	if path == "" {
		return domain.IOError("append log", errors.New("log_file is empty"))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return domain.IOError("append log", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return domain.IOError("append log", err)
	}
	if err := f.Close(); err != nil {
		return domain.IOError("append log", err)
	}
	return nil
}
