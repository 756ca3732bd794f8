// Package cmd 提供 auditcli 命令行工具的所有子命令实现。
// 本文件实现 config 命令及其子命令，用于查看和初始化配置。
//
// 支持的子命令：
//   - config view: 查看当前生效的配置
//   - config init: 初始化配置文件
//
// 配置在进程内只读，因此不提供 config set。
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oriys/auditcli/internal/config"
	"github.com/oriys/auditcli/internal/domain"
)

// newConfigCmd 创建 config 命令及其子命令。
func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage the auditcli configuration.

The configuration file is read from configs/config.yaml by default.
Use --config or AUDITCLI_CONFIG to choose another file.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return domain.ArgumentError("Unknown command: config " + args[0])
			}
			return cmd.Help()
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "View current configuration",
		Args:  a.noPositionalArgs,
		RunE:  a.runConfigView,
	}
	viewCmd.Flags().StringP("output", "o", "yaml", "输出格式（yaml、json）")
	configCmd.AddCommand(viewCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long: `Create a new configuration file with sample values.

Examples:
  auditcli config init
  auditcli --config=/etc/auditcli.yaml config init`,
		Args:        a.noPositionalArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE:        a.runConfigInit,
	})

	return configCmd
}

// runConfigView 是 config view 命令的执行函数。
// 该函数显示当前生效的配置（已应用默认值和环境变量覆盖）。
// yaml 格式会先显示配置文件的路径；json 格式只输出配置本身，便于程序解析。
func (a *app) runConfigView(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	if format == "yaml" {
		fmt.Fprintf(out, "Configuration file: %s\n\n", a.cfg.Path())
	}
	return NewPrinter(out, format).Print(a.cfg)
}

// runConfigInit 是 config init 命令的执行函数。
// 该函数在 --config 指定的位置创建示例配置文件。
// 如果配置文件已存在，会返回错误以防止覆盖。
func (a *app) runConfigInit(cmd *cobra.Command, args []string) error {
	path := a.cfgPath

	if _, err := os.Stat(path); err == nil {
		return domain.ConfigurationError(fmt.Sprintf("configuration file already exists at %s", path), nil)
	}

	data, err := yaml.Marshal(config.Sample())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.IOError("failed to create config directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.IOError("failed to write config", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created at %s\n\n", path)
	fmt.Fprint(out, string(data))
	return nil
}
