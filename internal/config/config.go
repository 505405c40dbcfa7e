// Package config 管理 CLI 客户端配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultServerURL 后端默认地址
const DefaultServerURL = "http://localhost:3000/api"

// FixedUserID 单用户模式下的固定用户 ID
const FixedUserID = 1

// Config CLI 配置结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	User   UserConfig   `mapstructure:"user"`
	UI     UIConfig     `mapstructure:"ui"`
	Agent  AgentConfig  `mapstructure:"agent"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
	Stub   StubConfig   `mapstructure:"stub"`
}

// ServerConfig 后端配置
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // HTTP API 地址（含 /api 前缀）
	Timeout time.Duration `mapstructure:"timeout"` // 单个请求超时，0 表示不限
}

// UserConfig 用户配置
type UserConfig struct {
	ID int `mapstructure:"id"`
}

// UIConfig 界面配置
type UIConfig struct {
	Locale         string        `mapstructure:"locale"`          // BCP 47，用于日期格式
	StatusInterval time.Duration `mapstructure:"status_interval"` // 系统视图刷新间隔，0 表示只拉取一次
}

// AgentConfig 代理配置
type AgentConfig struct {
	ResourceMood string `mapstructure:"resource_mood"` // 资源代理默认情绪
	InferMood    bool   `mapstructure:"infer_mood"`    // 是否从最近的用户消息推断情绪
}

// ExportConfig 导出配置
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// StubConfig 本地替身后端配置
type StubConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	cfg        *Config
	configPath string
	configDir  string
)

// Init 初始化配置；dir 为空时使用 ~/.moodnest
func Init(dir string) error {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("获取用户目录失败: %w", err)
		}
		dir = filepath.Join(home, ".moodnest")
	}

	configDir = dir
	configPath = filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	// .env 只是补充，不存在时忽略
	_ = godotenv.Load()

	viper.Reset()
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("MOODNEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// 文件不存在时写入默认配置
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			_ = viper.SafeWriteConfigAs(configPath)
		} else {
			return fmt.Errorf("读取配置失败: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	// 单用户模式，用户 ID 固定
	loaded.User.ID = FixedUserID

	cfg = loaded
	return nil
}

func setDefaults() {
	viper.SetDefault("server.url", DefaultServerURL)
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("user.id", FixedUserID)
	viper.SetDefault("ui.locale", "en-US")
	viper.SetDefault("ui.status_interval", "10s")
	viper.SetDefault("agent.resource_mood", "stress")
	viper.SetDefault("agent.infer_mood", false)
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.file", "")
	viper.SetDefault("stub.addr", "127.0.0.1:3000")
}

// Get 获取配置
func Get() *Config {
	if cfg == nil {
		return defaultConfig()
	}
	return cfg
}

// Path 配置文件路径
func Path() string {
	return configPath
}

// GetServerURL 获取后端地址
func GetServerURL() string {
	return Get().Server.URL
}

// SetServerURL 设置后端地址（仅当前进程生效）
func SetServerURL(url string) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	viper.Set("server.url", url)
	if cfg != nil {
		cfg.Server.URL = url
	}
}

// SaveResourceMood 保存资源代理默认情绪
func SaveResourceMood(mood string) error {
	viper.Set("agent.resource_mood", mood)
	if cfg != nil {
		cfg.Agent.ResourceMood = mood
	}
	return viper.WriteConfig()
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{URL: DefaultServerURL, Timeout: 30 * time.Second},
		User:   UserConfig{ID: FixedUserID},
		UI:     UIConfig{Locale: "en-US", StatusInterval: 10 * time.Second},
		Agent:  AgentConfig{ResourceMood: "stress"},
		Export: ExportConfig{Dir: "."},
		Log:    LogConfig{Level: "warn"},
		Stub:   StubConfig{Addr: "127.0.0.1:3000"},
	}
}
