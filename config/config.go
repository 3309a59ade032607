// Package config 提供 YAML 配置加载
//
// 配置文件查找顺序：
//  1. $AC4Y_CONFIG
//  2. ./ac4y.yaml
//
// 未找到配置文件时使用 DefaultConfig。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	appErrors "ac4y/errors"
)

// EnvConfigPath 指定配置文件路径的环境变量
const EnvConfigPath = "AC4Y_CONFIG"

// DefaultConfigFile 工作目录下的默认配置文件
const DefaultConfigFile = "ac4y.yaml"

// 存储驱动
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

func init() {
	appErrors.RegisterCode(ErrInvalidConfig, appErrors.ErrCodeInvalidInput, "无效的配置")
}

// Config 顶层配置
type Config struct {
	Codec CodecConfig `yaml:"codec"`
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

// CodecConfig 编码配置
type CodecConfig struct {
	Format string `yaml:"format"` // xml | json | yaml
	Indent bool   `yaml:"indent"`
}

// StoreConfig 文档存储配置
type StoreConfig struct {
	Driver string      `yaml:"driver"` // memory | sqlite | redis
	DSN    string      `yaml:"dsn"`    // sqlite 数据源，例如 ./ac4y.db 或 file::memory:
	Table  string      `yaml:"table"`  // sqlite 表名
	Redis  RedisConfig `yaml:"redis"`
	Cache  CacheConfig `yaml:"cache"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// CacheConfig 读缓存配置，MaxSize 为 0 时不启用
type CacheConfig struct {
	MaxSize int           `yaml:"max_size"`
	TTL     time.Duration `yaml:"ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig 默认配置：XML 编码、内存存储
func DefaultConfig() *Config {
	cfg := &Config{
		Codec: CodecConfig{Indent: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load 查找并加载配置文件，未找到时返回默认配置与空路径
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// FindConfigPath 按查找顺序返回第一个存在的配置文件
func FindConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// LoadFromPath 从指定路径加载配置
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse 解析 YAML 配置并补全默认值、校验
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save 写入配置文件
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// applyDefaults 补全缺省值
func (c *Config) applyDefaults() {
	c.Codec.Format = strings.ToLower(strings.TrimSpace(c.Codec.Format))
	if c.Codec.Format == "" {
		c.Codec.Format = "xml"
	}
	if c.Codec.Format == "yml" {
		c.Codec.Format = "yaml"
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.Store.Table == "" {
		c.Store.Table = "ac4y_documents"
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = "ac4y:doc:"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Prefix == "" {
		c.Log.Prefix = "[ac4y]"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Codec.Format {
	case "xml", "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown codec format %q", ErrInvalidConfig, c.Codec.Format)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: sqlite store requires dsn", ErrInvalidConfig)
		}
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("%w: redis store requires redis.addr", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Store.Cache.MaxSize < 0 {
		return fmt.Errorf("%w: cache.max_size must not be negative", ErrInvalidConfig)
	}
	if c.Store.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}
