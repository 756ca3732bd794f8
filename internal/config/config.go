// Package config 提供了审计日志工具的配置管理功能。
// 该包负责从 YAML 配置文件加载配置，应用默认值，并支持通过 AUDITCLI_* 环境变量覆盖配置项。
// 配置在进程启动时加载一次，之后只读。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/oriys/auditcli/internal/domain"
	"github.com/oriys/auditcli/internal/eventlog"
)

// EnvPrefix 是环境变量前缀，例如 AUDITCLI_LOG_LEVEL 覆盖 log_level。
const EnvPrefix = "AUDITCLI"

// DefaultFile 是未指定配置文件时使用的路径。
const DefaultFile = "configs/config.yaml"

// Config 是应用程序的配置结构体。
// mapstructure 标签供 viper 解码使用，yaml / json 标签供 config view / config init 输出使用。
type Config struct {
	// AppName 应用名称，显示在帮助信息中
	// 默认值：AuditCLI
	AppName string `mapstructure:"app_name" yaml:"app_name" json:"app_name"`
	// Version 应用版本，显示在帮助信息中
	// 默认值：0.1.0
	Version string `mapstructure:"version" yaml:"version" json:"version"`
	// LogChannel 日志输出通道，"file" 写入 LogFile，其他取值写入标准错误
	// 默认值：stderr
	LogChannel string `mapstructure:"log_channel" yaml:"log_channel" json:"log_channel"`
	// LogLevel 最小日志级别，可选值：debug、info、warn、error
	// 默认值：info
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	// LogFile 日志文件路径，相对路径基于配置文件所在目录解析
	LogFile string `mapstructure:"log_file" yaml:"log_file" json:"log_file"`
	// LogFormat 格式标记，原样写入每行日志
	// 默认值：text
	LogFormat string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	// Strict 是否拒绝无法识别的命令行参数
	// 默认值：true
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`

	path string
}

// Load 从指定路径加载配置文件。
// 该函数会读取 YAML 配置文件，应用默认值和环境变量覆盖，并校验结果。
//
// 参数：
//   - path: 配置文件的路径
//
// 返回值：
//   - *Config: 加载并处理后的配置对象
//   - error: 文件不存在、内容不是映射或校验失败时返回 domain.ErrConfiguration 种类的错误
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.ConfigurationError(fmt.Sprintf("Config not found: %s", path), nil)
	}
	if info.IsDir() {
		return nil, domain.ConfigurationError(fmt.Sprintf("Config not found: %s", path), nil)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.ConfigurationError(fmt.Sprintf("Config invalid: %s", path), err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.ConfigurationError(fmt.Sprintf("Config invalid: %s", path), err)
	}

	cfg.path = path
	cfg.resolvePaths()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回只包含默认值的配置，不读取任何文件。
func Default() *Config {
	return &Config{
		AppName:    "AuditCLI",
		Version:    "0.1.0",
		LogChannel: eventlog.ChannelStderr,
		LogLevel:   string(eventlog.LevelInfo),
		LogFormat:  "text",
		Strict:     true,
	}
}

// Sample 返回 config init 写出的示例配置：写入 audit.log 的文件通道。
func Sample() *Config {
	cfg := Default()
	cfg.LogChannel = eventlog.ChannelFile
	cfg.LogLevel = string(eventlog.LevelDebug)
	cfg.LogFile = "audit.log"
	return cfg
}

// DefaultPath 返回配置文件路径：优先使用 AUDITCLI_CONFIG，否则为 DefaultFile。
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG")); p != "" {
		return p
	}
	return DefaultFile
}

// LoadDotEnv 从 .env 文件预加载环境变量，已存在的环境变量不会被覆盖。
// 文件不存在不视为错误。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return domain.ConfigurationError(fmt.Sprintf("Env file invalid: %s", path), err)
	}
	return nil
}

// Path 返回配置来源文件；Default() 创建的配置返回空字符串。
func (c *Config) Path() string {
	return c.path
}

// Log 返回事件日志使用的配置。
func (c *Config) Log() eventlog.Config {
	return eventlog.Config{
		MinLevel: c.LogLevel,
		Channel:  c.LogChannel,
		FilePath: c.LogFile,
		Format:   c.LogFormat,
	}
}

// setDefaults 注册默认值。
// 所有键都需要注册，viper 的 AutomaticEnv 只对已知键生效。
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("app_name", d.AppName)
	v.SetDefault("version", d.Version)
	v.SetDefault("log_channel", d.LogChannel)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("strict", d.Strict)
}

// resolvePaths 将相对的日志文件路径解析为相对配置文件所在目录。
func (c *Config) resolvePaths() {
	if c.LogFile == "" || filepath.IsAbs(c.LogFile) {
		return
	}
	c.LogFile = filepath.Join(filepath.Dir(c.path), c.LogFile)
}

func (c *Config) validate() error {
	if c.LogChannel == eventlog.ChannelFile && strings.TrimSpace(c.LogFile) == "" {
		return domain.ConfigurationError(fmt.Sprintf("Config invalid: %s: log_file is required when log_channel is file", c.path), nil)
	}
	return nil
}
