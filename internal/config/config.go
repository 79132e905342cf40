package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config 全局配置结构体（对应 config/config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`     // HTTP 服务配置
	Database  DatabaseConfig  `mapstructure:"database"`   // 数据库配置
	Storage   StorageConfig   `mapstructure:"storage"`    // 本地文件存储配置
	Log       LogConfig       `mapstructure:"log"`        // 日志配置
	RateLimit RateLimitConfig `mapstructure:"rate_limit"` // 限流配置
	Scheduler SchedulerConfig `mapstructure:"scheduler"`  // 比赛状态调度配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int      `mapstructure:"port"`         // 服务端口
	Mode        string   `mapstructure:"mode"`         // Gin运行模式：debug/release/test
	APIPrefix   string   `mapstructure:"api_prefix"`   // 路由前缀，如 /api/v1
	Environment string   `mapstructure:"environment"`  // 部署环境名，/health 返回
	CORSOrigins []string `mapstructure:"cors_origins"` // 允许的跨域来源
}

// DatabaseConfig 数据库配置，driver 为 postgres 或 sqlite
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres / sqlite
	DSN             string        `mapstructure:"dsn"`               // 连接串；sqlite 时为文件路径
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 是否打印SQL
	Seed            bool          `mapstructure:"seed"`              // 空库时写入示例数据
}

// StorageConfig 文件存储配置
type StorageConfig struct {
	BasePath         string             `mapstructure:"base_path"`           // 存储根目录
	URLPrefix        string             `mapstructure:"url_prefix"`          // 文件访问URL前缀
	MaxSizeMB        map[string]float64 `mapstructure:"max_size_mb"`         // 各 bucket 上传上限
	DefaultMaxSizeMB float64            `mapstructure:"default_max_size_mb"` // 未配置 bucket 的上限
}

// LogConfig 日志配置；file 为空时只输出到 stdout
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text / json
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RateLimitConfig 按客户端IP限流
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// SchedulerConfig 比赛状态自动推进
type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// LoadConfig 加载 ./config/config.yaml，.env 与环境变量覆盖部署相关字段
func LoadConfig() (*Config, error) {
	// .env 可不存在
	_ = godotenv.Load()
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从 dir 读取 config.yaml；文件缺失时使用默认值
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	overrideFromEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.api_prefix", "/api/v1")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:8081"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "owlturf.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")

	v.SetDefault("storage.base_path", "./storage")
	v.SetDefault("storage.url_prefix", "/api/v1/files")
	v.SetDefault("storage.max_size_mb", map[string]float64{
		"reels":          100,
		"profile_images": 5,
		"product_images": 5,
	})
	v.SetDefault("storage.default_max_size_mb", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", "1m")
}

// overrideFromEnv 环境变量优先级高于 yaml
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
		if os.Getenv("DATABASE_DRIVER") == "" && strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("FILE_STORAGE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("BACKEND_CORS_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn 不能为空")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 无效: %d", c.Server.Port)
	}
	return nil
}

// GORMConfig 根据配置生成 GORM 配置
func (d *DatabaseConfig) GORMConfig() *gorm.Config {
	level := logger.Warn
	if d.LogSQL {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}
