// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"account-auth/internal/security"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// MetricsAddr serves Prometheus /metrics and /healthz. Empty disables it.
	MetricsAddr string `mapstructure:"METRICS_ADDR"`
	// DatabaseURL is the Postgres DSN. Empty runs the server on the in-memory repository.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// JWTAccessSecret and JWTRefreshSecret are the HS256 signing secrets. Both are required.
	JWTAccessSecret  string `mapstructure:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH_SECRET"`
	// JWTAccessExpires is the access token lifetime (e.g. "15m").
	JWTAccessExpires string `mapstructure:"JWT_ACCESS_EXPIRES"`
	// JWTRefreshExpires is the refresh token lifetime (e.g. "7d").
	JWTRefreshExpires string `mapstructure:"JWT_REFRESH_EXPIRES"`
	// JWTIssuer is the iss claim set on and required of every token.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// BcryptCost is the bcrypt cost factor (4–31); default 10.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// OTPLength is the number of digits in emailed codes.
	OTPLength int `mapstructure:"OTP_LENGTH"`
	// OTPTTLMinutes is how long an emailed code stays valid.
	OTPTTLMinutes int `mapstructure:"OTP_TTL_MINUTES"`

	MailHost  string `mapstructure:"MAIL_HOST"`
	MailPort  int    `mapstructure:"MAIL_PORT"`
	MailUser  string `mapstructure:"MAIL_USER"`
	MailPass  string `mapstructure:"MAIL_PASS"`
	MailFrom  string `mapstructure:"MAIL_FROM"`
	MailBrand string `mapstructure:"MAIL_BRAND"`

	// RedisAddr backs the dev OTP store when set; otherwise it is kept in memory.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// OTPReturnToClient when true enables dev OTP mode: codes are kept for DevService/GetOTP instead of mailed.
	// Must not be true when Env is production.
	OTPReturnToClient bool `mapstructure:"OTP_RETURN_TO_CLIENT"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// OTelEndpoint is the OTLP gRPC collector; empty disables export.
	OTelEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// LogFormat is "json" or "text"; LogLevel is debug, info, warn or error.
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	// Seed-only: the admin account created by cmd/seed.
	SeedAdminEmail    string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `mapstructure:"SEED_ADMIN_PASSWORD"`
	SeedAdminPhone    string `mapstructure:"SEED_ADMIN_PHONE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. A missing signing secret
// yields an error wrapping security.ErrConfigurationMissing.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET must be set: %w", security.ErrConfigurationMissing)
	}
	if cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_REFRESH_SECRET must be set: %w", security.ErrConfigurationMissing)
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if _, err := ParseDuration(cfg.JWTAccessExpires); err != nil {
		return nil, fmt.Errorf("config: JWT_ACCESS_EXPIRES: %w", err)
	}
	if _, err := ParseDuration(cfg.JWTRefreshExpires); err != nil {
		return nil, fmt.Errorf("config: JWT_REFRESH_EXPIRES: %w", err)
	}
	return cfg, nil
}

// LoadDatabase is Load without the token checks, for commands that only touch the database.
func LoadDatabase() (*Config, error) {
	return read()
}

func read() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees env-only values.
	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_ACCESS_SECRET", "")
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("JWT_ACCESS_EXPIRES", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES", "7d")
	v.SetDefault("JWT_ISSUER", "account-auth")
	v.SetDefault("BCRYPT_COST", security.DefaultCost)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_TTL_MINUTES", 10)
	v.SetDefault("MAIL_HOST", "")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USER", "")
	v.SetDefault("MAIL_PASS", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("MAIL_BRAND", "Account Auth")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("OTP_RETURN_TO_CLIENT", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_ADMIN_EMAIL", "")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
	v.SetDefault("SEED_ADMIN_PHONE", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GRPCAddr == "" {
		return nil, errors.New("config: GRPC_ADDR must be set")
	}
	if cfg.OTPReturnToClient && cfg.Env == "production" {
		return nil, errors.New("config: OTP_RETURN_TO_CLIENT must not be true when APP_ENV=production")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = security.DefaultCost
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.OTPLength < 4 || cfg.OTPLength > 10 {
		return nil, errors.New("config: OTP_LENGTH must be between 4 and 10")
	}
	if cfg.OTPTTLMinutes <= 0 {
		return nil, errors.New("config: OTP_TTL_MINUTES must be positive")
	}
	if cfg.MailHost != "" && cfg.MailFrom == "" {
		return nil, errors.New("config: MAIL_FROM must be set when MAIL_HOST is set")
	}
	return &cfg, nil
}

// AccessTTL parses JWTAccessExpires. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := ParseDuration(c.JWTAccessExpires)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// RefreshTTL parses JWTRefreshExpires. Returns 7 days if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	d, err := ParseDuration(c.JWTRefreshExpires)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// DevOTPEnabled reports whether OTPs are kept for DevService instead of mailed.
func (c *Config) DevOTPEnabled() bool {
	return c.OTPReturnToClient && c.Env != "production"
}

// ParseDuration accepts Go duration syntax plus a whole-day form ("7d").
// The result must be positive.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
