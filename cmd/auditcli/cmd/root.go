// Package cmd 包含 auditcli 命令行工具的所有命令实现
// 使用 cobra 框架构建命令行接口
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oriys/auditcli/internal/config"
	"github.com/oriys/auditcli/internal/domain"
	"github.com/oriys/auditcli/internal/eventlog"
	"github.com/oriys/auditcli/internal/telemetry"
)

// annotationSkipConfig 标记不需要预先加载配置文件的命令（例如 config init）。
const annotationSkipConfig = "auditcli/skip-config"

// dotEnvFile 是启动时预加载的环境变量文件。
const dotEnvFile = ".env"

// app 保存一次命令执行所需的全部依赖。
// 每次 Execute 都会创建新的 app 和命令树，不使用包级可变状态。
type app struct {
	stdout io.Writer
	stderr io.Writer
	args   []string

	// 由 bootstrap 填充
	cfgPath string
	cfg     *config.Config
	diag    *logrus.Logger

	// cobra 标志绑定，实际取值在 bootstrap 阶段已提前解析
	cfgFlag     string
	verboseFlag bool
}

// Execute 执行一次命令并返回进程退出码（0 成功，1 失败）。
// 这是唯一的顶层错误边界：所有失败都在这里记录 app.error 事件、
// 打印 "ERROR: <描述>" 到标准错误。
//
// 参数:
//   - args: 不含程序名的命令行参数
//   - stdout: 标准输出
//   - stderr: 标准错误
//
// 返回:
//   - int: 退出码
func Execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	a := &app{stdout: stdout, stderr: stderr, args: args}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := a.bootstrap(root, args)
	if err == nil {
		err = root.Execute()
	}
	if err != nil {
		return a.fail(err)
	}
	return 0
}

// newRootCmd 构建完整的命令树。
func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "auditcli",
		Short: "AuditCLI - audit event logger",
		Long: `auditcli 将审计事件以单行文本追加写入日志文件或标准错误。

使用示例:
  # 健康检查
  auditcli audit:ping

  # 写入审计事件
  auditcli audit:log --user=alice --action=login

  # 使用指定的配置文件
  auditcli --config=/etc/auditcli.yaml audit:log --user=alice --action=login`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return domain.ArgumentError("Unknown command: " + args[0])
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFlag, "config", config.DefaultPath(), "配置文件路径（也可通过 AUDITCLI_CONFIG 指定）")
	root.PersistentFlags().BoolVar(&a.verboseFlag, "verbose", false, "输出调试级别的诊断日志")
	// 事件参数对所有命令都是已识别的参数，只有 audit:log 读取它们
	root.PersistentFlags().String("user", "", "acting user")
	root.PersistentFlags().String("action", "", "action performed by the user")
	root.PersistentFlags().String("level", string(eventlog.LevelInfo), "requested level")

	root.SetHelpFunc(a.printHelp)
	root.SetFlagErrorFunc(a.flagError)

	root.AddCommand(a.newAuditPingCmd())
	root.AddCommand(a.newAuditLogCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newVersionCmd())
	root.InitDefaultHelpCmd()

	return root
}

// bootstrap 在 cobra 解析标志之前完成初始化：
// 预加载 .env、提前扫描 --config / --verbose、创建诊断日志、加载配置，
// 并根据配置中的 strict 决定是否拒绝未知参数。
func (a *app) bootstrap(root *cobra.Command, args []string) error {
	envErr := config.LoadDotEnv(dotEnvFile)

	boot := scanBootstrapFlags(args)
	a.cfgPath = boot.configPath
	a.diag = telemetry.NewLogger(a.stderr, telemetry.Options{
		Verbose: boot.verbose,
		Format:  os.Getenv(config.EnvPrefix + "_DIAG_FORMAT"),
	})
	if envErr != nil {
		return envErr
	}

	strict := config.Default().Strict
	target, _, err := root.Find(args)
	if err != nil || target == nil {
		target = root
	}

	if target.Annotations[annotationSkipConfig] == "true" {
		a.diag.WithField("command", target.Name()).Debug("skipping config load")
	} else {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		strict = cfg.Strict

		a.diag.WithFields(logrus.Fields{
			"config":      cfg.Path(),
			"log_channel": cfg.LogChannel,
			"log_level":   cfg.LogLevel,
			"strict":      cfg.Strict,
		}).Debug("config loaded")
	}

	applyStrict(root, strict)
	a.diag.WithField("command", target.Name()).Debug("dispatching command")
	return nil
}

// fail 处理命令失败：尽可能记录 app.error 事件，然后打印错误并返回退出码 1。
// app.error 事件写入失败只记录诊断日志，不改变原始错误的输出。
func (a *app) fail(err error) int {
	msg := err.Error()

	if a.cfg != nil {
		ctx := eventlog.NewFields().Set("msg", msg)
		if emitErr := a.emit(eventlog.LevelError, "app.error", ctx); emitErr != nil {
			a.diag.WithError(emitErr).Warn("failed to record app.error event")
		}
	}
	if a.diag != nil {
		a.diag.WithField("kind", domain.KindOf(err)).Debug("command failed")
	}

	printError(a.stderr, msg)
	return 1
}

// emit 按已加载的配置输出一条事件。
func (a *app) emit(level eventlog.Level, message string, ctx *eventlog.Fields) error {
	return eventlog.Emit(a.cfg.Log(), string(level), message, ctx, eventlog.WithStderr(a.stderr))
}

// strict 报告当前是否处于严格模式。
func (a *app) strict() bool {
	if a.cfg == nil {
		return config.Default().Strict
	}
	return a.cfg.Strict
}

// noPositionalArgs 是叶子命令的参数校验：严格模式下拒绝多余的位置参数。
func (a *app) noPositionalArgs(cmd *cobra.Command, args []string) error {
	if a.strict() && len(args) > 0 {
		return domain.ArgumentError("Unknown argument: " + args[0])
	}
	return nil
}

// applyStrict 为整棵命令树设置未知标志的处理方式。
// 非严格模式下未知标志被静默忽略。
func applyStrict(cmd *cobra.Command, strict bool) {
	cmd.FParseErrWhitelist.UnknownFlags = !strict
	for _, child := range cmd.Commands() {
		applyStrict(child, strict)
	}
}

// flagError 将 pflag 的解析错误转换为参数错误，错误信息中给出命令行上的原始参数。
func (a *app) flagError(_ *cobra.Command, err error) error {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		name := strings.TrimPrefix(msg, "unknown flag: ")
		return domain.ArgumentError("Unknown argument: " + rawToken(a.args, name))
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		if i := strings.LastIndex(msg, " in "); i >= 0 {
			return domain.ArgumentError("Unknown argument: " + msg[i+len(" in "):])
		}
	}
	return domain.ArgumentError(msg)
}

// rawToken 返回 args 中与 flag（形如 --name）对应的原始参数，例如 --name=value。
// 找不到时返回 flag 本身。
func rawToken(args []string, flag string) string {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag || strings.HasPrefix(arg, flag+"=") {
			return arg
		}
	}
	return flag
}

// printHelp 打印帮助信息，替代 cobra 的默认模板。
func (a *app) printHelp(cmd *cobra.Command, _ []string) {
	cfg := a.cfg
	if cfg == nil {
		cfg = config.Default()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s v%s\n", cfg.AppName, cfg.Version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  audit:ping                 healthcheck")
	fmt.Fprintln(out, "  audit:log --user=U --action=A   write an audit log event")
	fmt.Fprintln(out, "  config view                show the effective configuration")
	fmt.Fprintln(out, "  config init                write a sample configuration file")
	fmt.Fprintln(out, "  version                    print version information")
}

// bootstrapFlags 是在 cobra 之前提前解析的全局标志。
type bootstrapFlags struct {
	configPath string
	verbose    bool
}

// scanBootstrapFlags 只解析 --config 和 --verbose，忽略其余参数。
// 配置决定严格模式，因此必须在 cobra 解析其余标志之前得到配置路径。
func scanBootstrapFlags(args []string) bootstrapFlags {
	var b bootstrapFlags

	fs := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVar(&b.configPath, "config", config.DefaultPath(), "")
	fs.BoolVar(&b.verbose, "verbose", false, "")
	// 注册 help 以免 pflag 遇到 -h 时提前返回 ErrHelp
	fs.BoolP("help", "h", false, "")

	_ = fs.Parse(args)
	return b
}
