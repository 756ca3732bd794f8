package eventlog

import (
	"strings"
	"time"
)

// TimeLayout 是行首时间戳的格式：ISO-8601，始终带数字时区偏移（UTC 输出 +00:00 而不是 Z）。
const TimeLayout = "2006-01-02T15:04:05-07:00"

// Event 表示一条待输出的审计事件。
// 它只在一次 Emit 调用内存在，时间戳在输出时生成。
type Event struct {
	Timestamp time.Time
	Level     string
	Message   string
	Context   *Fields
}

// Line 将事件渲染为一行文本（以 \n 结尾）。
// 上下文为空时渲染为空字符串，行尾因此保留一个空格。
func (e Event) Line(format string) (string, error) {
	ctx := ""
	if e.Context.Len() > 0 {
		data, err := e.Context.MarshalJSON()
		if err != nil {
			return "", err
		}
		ctx = string(data)
	}

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(e.Timestamp.Format(TimeLayout))
	b.WriteString("] ")
	b.WriteString(e.Level)
	b.WriteByte(' ')
	b.WriteString(e.Message)
	b.WriteByte(' ')
	b.WriteString(format)
	b.WriteByte(' ')
	b.WriteString(ctx)
	b.WriteByte('\n')
	return b.String(), nil
}
