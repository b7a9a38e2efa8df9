// internal/config/config.go
//
// Runtime configuration for the gamehub binary.
// Responsibilities:
//   - Load .env (development convenience, ignored when missing).
//   - Read an optional config file (YAML/TOML/JSON) named by --config.
//   - Overlay GAMEHUB_* environment variables and apply defaults.
//
// Env mapping: nested keys use underscores, e.g. store.dsn → GAMEHUB_STORE_DSN.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Port           int    `mapstructure:"port"`
	LogLevel       string `mapstructure:"log_level"`
	ClientOrigin   string `mapstructure:"client_origin"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiresDays int    `mapstructure:"jwt_expires_days"`
	CookieName     string `mapstructure:"cookie_name"`
	SecureCookies  bool   `mapstructure:"secure_cookies"`
	Seed           uint64 `mapstructure:"seed"`

	Store  StoreConfig  `mapstructure:"store"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Words  WordsConfig  `mapstructure:"words"`
	Runner RunnerConfig `mapstructure:"runner"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// RedisConfig is used when store.backend is redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WordsConfig overrides the embedded word lists.
type WordsConfig struct {
	AnswersFile    string `mapstructure:"answers_file"`
	AllowedFile    string `mapstructure:"allowed_file"`
	CategoriesFile string `mapstructure:"categories_file"`
}

type RunnerConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 5175)
	v.SetDefault("log_level", "info")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("jwt_expires_days", 7)
	v.SetDefault("cookie_name", "gamehub_token")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("seed", 0)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.driver", "sqlite3")
	v.SetDefault("store.dsn", "./data/gamehub.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("words.answers_file", "")
	v.SetDefault("words.allowed_file", "")
	v.SetDefault("words.categories_file", "")
	v.SetDefault("runner.tick", "16ms")
}

// Load builds a Config. path may be empty.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GAMEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Runner.Tick <= 0 {
		return nil, fmt.Errorf("runner.tick must be positive, got %s", cfg.Runner.Tick)
	}
	return &cfg, nil
}
