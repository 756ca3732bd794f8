// Package main 是 auditcli 命令行工具的入口点
// auditcli 用于写入审计事件日志，并提供健康检查与配置管理命令
package main

import (
	"os"

	"github.com/oriys/auditcli/cmd/auditcli/cmd"
)

// main 是 CLI 工具的主函数
// 它调用 cmd 包的 Execute 函数解析并执行命令，并以其返回值作为退出码
func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
