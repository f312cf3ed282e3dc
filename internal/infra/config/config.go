package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	LeetCode     LeetCodeConfig     `yaml:"leetcode"`
	ProfileCache ProfileCacheConfig `yaml:"profileCache"`
	LLM          LLMConfig          `yaml:"llm"`
	LogStore     LogStoreConfig     `yaml:"logStore"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CORSConfig lists browser origins allowed to call the API. Empty allows all.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LeetCodeConfig points at the upstream GraphQL API.
type LeetCodeConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Referer   string        `yaml:"referer"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ProfileCacheConfig controls the fetch-and-cache gateway.
type ProfileCacheConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	Prefix    string        `yaml:"prefix"`
	Retention time.Duration `yaml:"retention"`
}

// LLMConfig contains chat completion settings. FallbackAPIKey is tried
// when the primary credential fails.
type LLMConfig struct {
	APIKey         string        `yaml:"apiKey"`
	FallbackAPIKey string        `yaml:"fallbackApiKey"`
	BaseURL        string        `yaml:"baseUrl"`
	Model          string        `yaml:"model"`
	Temperature    float32       `yaml:"temperature"`
	Timeout        time.Duration `yaml:"timeout"`
}

// LogStoreConfig selects where search attempts and visits are written.
type LogStoreConfig struct {
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlitePath"`
	MaxConns   int32  `yaml:"maxConns"`
	MinConns   int32  `yaml:"minConns"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads configuration from a YAML file, an optional .env file and
// environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + strings.TrimPrefix(v, ":")
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	setBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	setInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	setInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	setBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	setInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	setDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)

	setString("LEETCODE_ENDPOINT", &cfg.LeetCode.Endpoint)
	setString("LEETCODE_USER_AGENT", &cfg.LeetCode.UserAgent)
	setDuration("LEETCODE_TIMEOUT", &cfg.LeetCode.Timeout)

	setDuration("PROFILE_CACHE_TTL", &cfg.ProfileCache.TTL)
	setBool("PROFILE_CACHE_VALKEY_ENABLED", &cfg.ProfileCache.Valkey.Enabled)
	setString("PROFILE_CACHE_VALKEY_ADDR", &cfg.ProfileCache.Valkey.Addr)
	setString("PROFILE_CACHE_VALKEY_PREFIX", &cfg.ProfileCache.Valkey.Prefix)

	setString("MISTRAL_API_KEY1", &cfg.LLM.APIKey)
	setString("MISTRAL_API_KEY2", &cfg.LLM.FallbackAPIKey)
	setString("LLM_API_KEY", &cfg.LLM.APIKey)
	setString("LLM_FALLBACK_API_KEY", &cfg.LLM.FallbackAPIKey)
	setString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	setString("LLM_MODEL", &cfg.LLM.Model)
	setDuration("LLM_TIMEOUT", &cfg.LLM.Timeout)
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.LogStore.DSN = v
		if os.Getenv("LOG_STORE_DRIVER") == "" {
			cfg.LogStore.Driver = DriverPostgres
		}
	}
	setString("LOG_STORE_DRIVER", &cfg.LogStore.Driver)
	setString("LOG_STORE_SQLITE_PATH", &cfg.LogStore.SQLitePath)
	if v := os.Getenv("LOG_STORE_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LogStore.MaxConns = int32(parsed)
		}
	}
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 10,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/logs",
				},
			},
		},
		LeetCode: LeetCodeConfig{
			Endpoint:  "https://leetcode.com/graphql",
			Referer:   "https://leetcode.com",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			Timeout:   10 * time.Second,
		},
		ProfileCache: ProfileCacheConfig{
			TTL: 5 * time.Minute,
			Valkey: ValkeyConfig{
				Prefix:    "leetlens:profile",
				Retention: 24 * time.Hour,
			},
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.mistral.ai/v1",
			Model:       "mistral-small-latest",
			Temperature: 0.3,
			Timeout:     30 * time.Second,
		},
		LogStore: LogStoreConfig{
			Driver:     DriverMemory,
			SQLitePath: "data/leetlens.db",
			MaxConns:   4,
			MinConns:   0,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if strings.TrimSpace(c.LeetCode.Endpoint) == "" {
		return errors.New("leetcode.endpoint cannot be empty")
	}
	if c.ProfileCache.TTL <= 0 {
		return errors.New("profileCache.ttl must be positive")
	}
	if c.ProfileCache.Valkey.Enabled && strings.TrimSpace(c.ProfileCache.Valkey.Addr) == "" {
		return errors.New("profileCache.valkey.addr cannot be empty when valkey is enabled")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 {
		return errors.New("llm.temperature cannot be negative")
	}
	switch c.LogStore.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.LogStore.DSN) == "" {
			return errors.New("logStore.dsn cannot be empty for the postgres driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.LogStore.SQLitePath) == "" {
			return errors.New("logStore.sqlitePath cannot be empty for the sqlite driver")
		}
	default:
		return fmt.Errorf("logStore.driver %q is not one of memory, postgres, sqlite", c.LogStore.Driver)
	}
	return nil
}
