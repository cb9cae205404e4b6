package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	DB     DBConfig     `mapstructure:"db"`
	Cache  CacheConfig  `mapstructure:"cache"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Notify NotifyConfig `mapstructure:"notify"`
	Cron   CronConfig   `mapstructure:"cron"`

	Surfaces SurfacesConfig `mapstructure:"surfaces"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr       string   `mapstructure:"http_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// StoreConfig selects where odds and bets live. "memory" keeps everything in
// process and loses it on restart; "postgres" uses the db section.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Seed    bool   `mapstructure:"seed"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Backend       string        `mapstructure:"backend"`
	DefaultTTL    time.Duration `mapstructure:"default_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
}

// LLMConfig picks the analyst. "heuristic" never leaves the process.
// API keys are read from the environment, not from this file.
type LLMConfig struct {
	Provider  string        `mapstructure:"provider"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url"`
	MaxTokens int64         `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled       bool  `mapstructure:"enabled"`
	ChatID        int64 `mapstructure:"chat_id"`
	MinConfidence int   `mapstructure:"min_confidence"`
}

// SurfacesConfig bounds the per-surface result registry.
type SurfacesConfig struct {
	MaxKeys  int           `mapstructure:"max_keys"`
	IdleTime time.Duration `mapstructure:"idle_time"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	CacheSweep   string `mapstructure:"cache_sweep"`
	SurfaceSweep string `mapstructure:"surface_sweep"`
	StoreStats   string `mapstructure:"store_stats"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BETSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.seed", true)

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.default_ttl", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.key_prefix", "betsense:")

	v.SetDefault("llm.provider", "heuristic")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.timeout", "45s")

	v.SetDefault("notify.telegram.enabled", false)
	v.SetDefault("notify.telegram.chat_id", 0)
	v.SetDefault("notify.telegram.min_confidence", 75)

	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.cache_sweep", "@every 5m")
	v.SetDefault("cron.surface_sweep", "@every 10m")
	v.SetDefault("cron.store_stats", "@every 15m")

	v.SetDefault("surfaces.max_keys", 1024)
	v.SetDefault("surfaces.idle_time", "30m")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
