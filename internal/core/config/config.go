package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

type Config struct {
	DatabaseURL        string
	AppHost            string
	AppEnv             string
	SecretKey          string
	SessionTTL         time.Duration
	RequestTimeout     time.Duration
	DefaultWarehouseID *uuid.UUID
	LoginRateLimit     int
	LoginRateWindow    time.Duration
	CORSAllowedOrigins []string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first without overriding variables that are
// already set.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_HOST", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SESSION_TTL", "3h")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", "5m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	return v
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		AppHost:            v.GetString("APP_HOST"),
		AppEnv:             v.GetString("APP_ENV"),
		SecretKey:          v.GetString("SECRET_KEY"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		LoginRateLimit:     v.GetInt("LOGIN_RATE_LIMIT"),
		LoginRateWindow:    v.GetDuration("LOGIN_RATE_WINDOW"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
	}

	if raw := strings.TrimSpace(v.GetString("DEFAULT_WAREHOUSE_ID")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_WAREHOUSE_ID is not a valid uuid: %w", err)
		}
		cfg.DefaultWarehouseID = &id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY environment variable is not set"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.LoginRateLimit <= 0 || c.LoginRateWindow <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
