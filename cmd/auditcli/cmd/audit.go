// Package cmd 提供 auditcli 命令行工具的所有子命令实现。
// 本文件实现审计相关命令：
//   - audit:ping: 健康检查，输出 pong
//   - audit:log:  写入一条审计事件
package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oriys/auditcli/internal/domain"
	"github.com/oriys/auditcli/internal/eventlog"
)

// Options 是 audit:log 的类型化参数。
// User 和 Action 为 nil 表示命令行中未提供。
type Options struct {
	User   *string
	Action *string
	// Level 请求的级别，默认为 info；审计事件本身始终以 info 级别写入
	Level string
}

// newAuditPingCmd 创建 audit:ping 命令。
func (a *app) newAuditPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit:ping",
		Short: "healthcheck",
		Args:  a.noPositionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "pong")
			return nil
		},
	}
}

// newAuditLogCmd 创建 audit:log 命令。
func (a *app) newAuditLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit:log --user=U --action=A",
		Short: "write an audit log event",
		Long: `Write an audit event for a user action.

Examples:
  auditcli audit:log --user=alice --action=login`,
		Args: a.noPositionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAuditLog(cmd.OutOrStdout(), optionsFromFlags(cmd.Flags()))
		},
	}
	return cmd
}

// optionsFromFlags 将解析后的标志转换为 Options。
// --user、--action、--level 是根命令上的持久标志，解析后合并在 fs 中。
func optionsFromFlags(fs *pflag.FlagSet) Options {
	opts := Options{Level: string(eventlog.LevelInfo)}

	if fs.Changed("user") {
		v, _ := fs.GetString("user")
		opts.User = &v
	}
	if fs.Changed("action") {
		v, _ := fs.GetString("action")
		opts.Action = &v
	}
	if v, _ := fs.GetString("level"); v != "" {
		opts.Level = v
	}
	return opts
}

// runAuditLog 校验参数并写入 audit.event 事件，成功后输出 ok。
// 空字符串与未提供同样视为缺失。
func (a *app) runAuditLog(out io.Writer, opts Options) error {
	if opts.User == nil || *opts.User == "" || opts.Action == nil || *opts.Action == "" {
		return domain.ArgumentError("Missing --user or --action")
	}

	a.diag.WithFields(logrus.Fields{
		"user":            *opts.User,
		"action":          *opts.Action,
		"requested_level": opts.Level,
	}).Debug("recording audit event")
	if !eventlog.Known(opts.Level) {
		a.diag.WithField("requested_level", opts.Level).Debug("unknown level, treated as info")
	}

	ctx := eventlog.NewFields().
		Set("user", *opts.User).
		Set("action", *opts.Action)
	if err := a.emit(eventlog.LevelInfo, "audit.event", ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "ok")
	return nil
}
