package eventlog

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields 是事件上下文：保持插入顺序的键值映射。
// 序列化为紧凑 JSON 时按插入顺序输出键，不转义 HTML 字符和斜杠。
// nil *Fields 和零值 Fields 都等价于空上下文。
type Fields struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewFields 创建一个空的上下文。
func NewFields() *Fields {
	return &Fields{om: orderedmap.New[string, any]()}
}

// Set 设置键值并返回自身，便于链式调用。
// 已存在的键保持原有位置，只更新值。
func (f *Fields) Set(key string, value any) *Fields {
	if f.om == nil {
		f.om = orderedmap.New[string, any]()
	}
	f.om.Set(key, value)
	return f
}

// Get 返回键对应的值。
func (f *Fields) Get(key string) (any, bool) {
	if f.empty() {
		return nil, false
	}
	return f.om.Get(key)
}

// Len 返回键的数量。
func (f *Fields) Len() int {
	if f.empty() {
		return 0
	}
	return f.om.Len()
}

// Keys 按插入顺序返回所有键。
func (f *Fields) Keys() []string {
	if f.empty() {
		return nil
	}
	keys := make([]string, 0, f.om.Len())
	for p := f.om.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// MarshalJSON 将上下文编码为紧凑的 JSON 对象。
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if !f.empty() {
		for p := f.om.Oldest(); p != nil; p = p.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			if err := encodeCompact(&buf, p.Key); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := encodeCompact(&buf, p.Value); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 解码 JSON 对象并保留键的原始顺序。
func (f *Fields) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, any]()
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}
	f.om = om
	return nil
}

func (f *Fields) empty() bool {
	return f == nil || f.om == nil || f.om.Len() == 0
}

// encodeCompact 写入 v 的 JSON 编码，关闭 HTML 转义并去掉 Encoder 追加的换行。
func encodeCompact(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}
