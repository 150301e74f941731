package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "POMBOT"

// Load reads configuration from path (or the default search locations when
// path is empty), a .env file if one is found, and the environment.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	applyDefaults(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 1551)
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.allow_origin", "*")

	v.SetDefault("catalog.path", "POMWORKZ AUTO PARTS CATALOG.pdf")
	v.SetDefault("catalog.supplement_path", "knowledge_base.txt")

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.model", "qwen2.5:0.5b")
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", "15s")
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.backoff", "1s")
	v.SetDefault("llm.temperature", 0.3)

	v.SetDefault("cache.capacity", 100)
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// bindLegacyEnv keeps the variable names the shop's deployment scripts export.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "HOST")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("catalog.path", envPrefix+"_CATALOG_PATH", "PDF_PATH")
	_ = v.BindEnv("llm.base_url", envPrefix+"_LLM_BASE_URL", "OLLAMA_URL")
	_ = v.BindEnv("llm.model", envPrefix+"_LLM_MODEL", "OLLAMA_MODEL")
	_ = v.BindEnv("telegram.token", envPrefix+"_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.MaxAttempts <= 0 {
		cfg.LLM.MaxAttempts = 3
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = 15 * time.Second
	}
	if cfg.LLM.Backoff < 0 {
		cfg.LLM.Backoff = 0
	}
	if cfg.Cache.Capacity <= 0 {
		cfg.Cache.Capacity = 100
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 60 * time.Second
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.Catalog.Path) == "" && strings.TrimSpace(cfg.Catalog.SupplementPath) == "" {
		return errors.New("catalog.path or catalog.supplement_path is required")
	}
	if cfg.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	return nil
}

// loadEnvFile loads the first .env found in the working directory or the
// module root.
func loadEnvFile() string {
	candidates := []string{".env", "../.env"}
	if root := findModuleRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
