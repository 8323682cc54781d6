package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from an optional config file
// and environment variables. Environment variables win.
type Config struct {
	Env             string        `mapstructure:"env"`               // current environment (local, dev, prod)
	Addr            string        `mapstructure:"addr"`              // HTTP listen address
	JWTSigningKey   string        `mapstructure:"-"`                 // HS256 signing key, loaded from environment
	TokenTTL        time.Duration `mapstructure:"token_ttl"`         // access token lifetime
	CronSecret      string        `mapstructure:"-"`                 // bearer secret guarding /keepalive
	DatabaseURL     string        `mapstructure:"-"`                 // postgres DSN; empty means in-memory stores
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`  // graceful shutdown budget
	Redis           RedisConfig   `mapstructure:"redis"`             // redis section
}

// RedisConfig contains connection settings for the optional Redis client.
type RedisConfig struct {
	URL          string        `mapstructure:"-"` // loaded from environment; empty disables Redis
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("addr", ":8080")
	v.SetDefault("token_ttl", "12h")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("addr", "CERTFORM_ADDR")
	_ = v.BindEnv("jwt_signing_key", "JWT_SIGNING_KEY")
	_ = v.BindEnv("cron_secret", "CRON_SECRET")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")

	// Config file is optional; env-only deployments are the common case.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWTSigningKey = v.GetString("jwt_signing_key")
	if cfg.JWTSigningKey == "" {
		// Development fallback; must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	cfg.CronSecret = v.GetString("cron_secret")
	cfg.DatabaseURL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	return &cfg, nil
}
