package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Environment                   string        `mapstructure:"ENVIRONMENT"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	Port                          string        `mapstructure:"PORT"`
	StoreBackend                  string        `mapstructure:"STORE_BACKEND"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	RedisAddr                     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword                 string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                       int           `mapstructure:"REDIS_DB"`
	RedisPrefix                   string        `mapstructure:"REDIS_PREFIX"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	FrontendURL                   string        `mapstructure:"FRONTEND_URL"`
	StatusSweepInterval           time.Duration `mapstructure:"STATUS_SWEEP_INTERVAL"`
	Timezone                      string        `mapstructure:"TIMEZONE"`
	SeedDemo                      bool          `mapstructure:"SEED_DEMO"`
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_BACKEND", BackendSQLite)
	v.SetDefault("DATABASE_PATH", "eventflow.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "")
	v.SetDefault("FRONTEND_URL", "http://127.0.0.1:5173")
	v.SetDefault("STATUS_SWEEP_INTERVAL", "1m")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("SEED_DEMO", false)

	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("JWT_SECRET")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("JWT_SECRET is required outside development")
	}
	switch c.StoreBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return errors.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StatusSweepInterval <= 0 {
		return errors.New("STATUS_SWEEP_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.Wrapf(err, "invalid TIMEZONE %q", c.Timezone)
	}
	return nil
}

// Location returns the configured timezone; Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
