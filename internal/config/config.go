package config

import "time"

// Config is the full runtime configuration. Values come from
// configs/config.yaml, then POMBOT_* environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Debug   DebugConfig   `mapstructure:"debug"`

	Telegram TelegramConfig `mapstructure:"telegram"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	RequireCatalog  bool          `mapstructure:"require_catalog"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	AllowOrigin     string        `mapstructure:"allow_origin"`
}

type CatalogConfig struct {
	// Path is the catalog document (PDF or plain text).
	Path string `mapstructure:"path"`
	// SupplementPath is an optional free-text file appended to the document text.
	SupplementPath string `mapstructure:"supplement_path"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Backoff     time.Duration `mapstructure:"backoff"`
	Temperature float64       `mapstructure:"temperature"`
}

type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
	// RedisAddress enables the shared second-level cache when non-empty.
	RedisAddress  string        `mapstructure:"redis_address"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DebugConfig struct {
	// MiddlewareLog is a JSONL file receiving one line per intent dispatch.
	MiddlewareLog       string   `mapstructure:"middleware_log"`
	DisabledMiddlewares []string `mapstructure:"disabled_middlewares"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}
