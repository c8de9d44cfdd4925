package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、.env文件、环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Registry RegistryConfig `mapstructure:"registry"`
	MQ       MQConfig       `mapstructure:"mq"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig 目录与用户表的存储方式
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`    // memory | mysql
	SeedFile string `mapstructure:"seed_file"` // memory模式下的目录数据文件
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CatalogConfig 异步查询路径使用的间接数据源
type CatalogConfig struct {
	Source        string        `mapstructure:"source"`         // local | http
	RemoteURL     string        `mapstructure:"remote_url"`     // http模式下拉取完整目录的地址
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"` // 单次拉取超时
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`      // Redis缓存时间，0表示不缓存
	Breaker       BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig 熔断器参数
type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

// RegistryConfig 用户注册策略
type RegistryConfig struct {
	HashPasswords bool `mapstructure:"hash_passwords"`
	BcryptCost    int  `mapstructure:"bcrypt_cost"`
}

type MQConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	URL          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange_type"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC地址，如localhost:4317
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

const envPrefix = "BOOKCATALOG"

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 通过环境变量BOOKCATALOG_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖（如BOOKCATALOG_DATABASE_PASSWORD）
// 4. 当前目录下的.env文件会先被加载到环境变量
func Load() (*Config, error) {
	// .env不存在不算错误
	_ = godotenv.Load()

	name := "config"
	if env := os.Getenv(envPrefix + "_ENV"); env != "" {
		name = "config." + env
	}

	v := newViper()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile 从指定文件加载配置（测试、命令行工具使用）
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// 环境变量绑定（BOOKCATALOG_DATABASE_PASSWORD → database.password）
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 默认值
// 说明：AutomaticEnv只对viper已知的key生效，设置默认值也让环境变量覆盖可用
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.seed_file", "config/books.yaml")

	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("catalog.source", "local")
	v.SetDefault("catalog.remote_url", "http://localhost:8080/api/v1/books")
	v.SetDefault("catalog.remote_timeout", 3*time.Second)
	v.SetDefault("catalog.cache_ttl", 0)
	v.SetDefault("catalog.breaker.max_requests", 1)
	v.SetDefault("catalog.breaker.interval", 10*time.Second)
	v.SetDefault("catalog.breaker.timeout", 30*time.Second)
	v.SetDefault("catalog.breaker.consecutive_failures", 5)

	v.SetDefault("registry.hash_passwords", false)
	v.SetDefault("registry.bcrypt_cost", 12)

	v.SetDefault("mq.enabled", false)
	v.SetDefault("mq.exchange", "bookcatalog.events")
	v.SetDefault("mq.exchange_type", "topic")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "bookcatalog")
	v.SetDefault("tracing.endpoint", "localhost:4317")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Storage.Driver {
	case "memory":
		if cfg.Storage.SeedFile == "" {
			return fmt.Errorf("memory存储必须配置storage.seed_file")
		}
	case "mysql":
	default:
		return fmt.Errorf("不支持的存储类型: %s", cfg.Storage.Driver)
	}

	switch cfg.Catalog.Source {
	case "local":
	case "http":
		if _, err := url.ParseRequestURI(cfg.Catalog.RemoteURL); err != nil {
			return fmt.Errorf("无效的catalog.remote_url: %w", err)
		}
	default:
		return fmt.Errorf("不支持的数据源类型: %s", cfg.Catalog.Source)
	}

	if cfg.Catalog.CacheTTL > 0 && !cfg.Redis.Enabled {
		return fmt.Errorf("启用catalog.cache_ttl需要开启redis")
	}

	if cfg.MQ.Enabled && cfg.MQ.URL == "" {
		return fmt.Errorf("启用mq需要配置mq.url")
	}

	return nil
}
