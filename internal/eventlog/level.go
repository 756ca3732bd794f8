// Package eventlog 实现带阈值过滤的分级事件日志。
//
// 每个事件要么被完全抑制（无任何副作用），要么以单行文本一次性写入
// 文件或标准错误，格式为：
//
//	[<ISO-8601 时间戳>] <level> <message> <format> <context-json>\n
//
// 该格式是与现有日志消费方的字节级约定，不经过诊断日志（logrus）。
package eventlog

// Level 是日志级别名称。
// 未知名称不会报错：比较时按 info 的序数处理，输出时保留原始字符串。
type Level string

// 已知的日志级别
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// DefaultOrdinal 是未知级别名称对应的序数（等同 info）。
const DefaultOrdinal = 20

var ordinals = map[Level]int{
	LevelDebug: 10,
	LevelInfo:  20,
	LevelWarn:  30,
	LevelError: 40,
}

// Ordinal 返回级别名称的数值序数，名称区分大小写。
func Ordinal(name string) int {
	if n, ok := ordinals[Level(name)]; ok {
		return n
	}
	return DefaultOrdinal
}

// Known 报告 name 是否为已知级别。
func Known(name string) bool {
	_, ok := ordinals[Level(name)]
	return ok
}

// Enabled 报告 level 级别的事件在最小级别 min 下是否应当输出。
func Enabled(level, min string) bool {
	return Ordinal(level) >= Ordinal(min)
}
