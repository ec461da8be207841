package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Store       StoreConfig     `mapstructure:"store"`
	Preview     PreviewConfig   `mapstructure:"preview"`
	Import      ImportConfig    `mapstructure:"import"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowOrigins   []string      `mapstructure:"allow_origins"`
}

// StoreConfig 儲存設定
type StoreConfig struct {
	Driver string      `mapstructure:"driver"` // memory | redis
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// PreviewConfig 匯入預覽快取設定
type PreviewConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// ImportConfig 匯入設定
type ImportConfig struct {
	MaxDocumentBytes int64         `mapstructure:"max_document_bytes"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
	DefaultServings  int           `mapstructure:"default_servings"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 儲存驅動
const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
)

// LoadConfig 載入設定：.env（可省略）、config.yaml（可省略）、環境變數
func LoadConfig() (*Config, error) {
	// 加載 .env 文件；檔案不存在時只用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return Load(v)
}

// Load 由指定的 viper 實例解析設定（環境變數優先於設定檔）
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"store.driver":              "STORE_DRIVER",
		"store.redis.addr":          "REDIS_ADDR",
		"store.redis.password":      "REDIS_PASSWORD",
		"store.redis.db":            "REDIS_DB",
		"rate_limit.enabled":        "RATE_LIMIT_ENABLED",
		"rate_limit.requests":       "RATE_LIMIT_REQUESTS",
		"rate_limit.window":         "RATE_LIMIT_WINDOW",
		"import.max_document_bytes": "MAX_DOCUMENT_BYTES",
		"dedup_window":              "DEDUP_WINDOW",
		"log_level":                 "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-consolidator")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 8*1024*1024) // 8MB，base64 上傳會膨脹約 4/3
	v.SetDefault("server.allow_origins", []string{"*"})

	// 儲存設定
	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key_prefix", "recipe:")
	v.SetDefault("store.redis.dial_timeout", "5s")

	// 預覽設定
	v.SetDefault("preview.ttl", "30m")
	v.SetDefault("preview.cleanup_interval", "10m")

	// 匯入設定
	v.SetDefault("import.max_document_bytes", 5*1024*1024) // 5MB
	v.SetDefault("import.fetch_timeout", "15s")
	v.SetDefault("import.user_agent", "recipe-consolidator/1.0")
	v.SetDefault("import.default_servings", 4)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid server max body bytes")
	}
	if len(config.Server.AllowOrigins) == 0 {
		return fmt.Errorf("server allow origins must not be empty")
	}

	// 驗證儲存設定
	switch config.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverRedis:
		if config.Store.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required when store driver is redis")
		}
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	// 驗證預覽設定
	if config.Preview.TTL <= 0 {
		return fmt.Errorf("invalid preview ttl")
	}
	if config.Preview.CleanupInterval <= 0 {
		return fmt.Errorf("invalid preview cleanup interval")
	}

	// 驗證匯入設定
	if config.Import.MaxDocumentBytes <= 0 {
		return fmt.Errorf("invalid import max document bytes")
	}
	if config.Import.DefaultServings < 1 {
		return fmt.Errorf("import default servings must be at least 1")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
