// Package cmd 提供 auditcli 命令行工具的所有子命令实现。
// 本文件实现结构化输出，支持两种格式：
//   - yaml: 默认格式，适合人类阅读和直接保存为配置文件
//   - json: 适合程序处理
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oriys/auditcli/internal/domain"
)

// Printer 是格式化输出的处理器。
type Printer struct {
	format string    // 输出格式：yaml 或 json
	writer io.Writer // 输出目标
}

// NewPrinter 创建一个新的 Printer 实例，未指定格式时使用 yaml。
func NewPrinter(w io.Writer, format string) *Printer {
	if format == "" {
		format = "yaml"
	}
	return &Printer{format: format, writer: w}
}

// Print 按配置的格式输出 v。未知格式返回参数错误。
func (p *Printer) Print(v interface{}) error {
	switch p.format {
	case "yaml":
		return p.printYAML(v)
	case "json":
		return p.printJSON(v)
	default:
		return domain.ArgumentError(fmt.Sprintf("Unknown output format: %s", p.format))
	}
}

// printJSON 以带缩进的 JSON 格式输出数据。
func (p *Printer) printJSON(v interface{}) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML 以 YAML 格式输出数据。
func (p *Printer) printYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.writer.Write(data)
	return err
}
