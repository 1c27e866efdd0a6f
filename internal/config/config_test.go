package config

import (
	"errors"
	"testing"
	"time"

	"account-auth/internal/security"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":8080" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":8080")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, ":9090")
	}
	if cfg.JWTIssuer != "account-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "account-auth")
	}
	if cfg.JWTAccessExpires != "15m" || cfg.JWTRefreshExpires != "7d" {
		t.Errorf("expires = %q/%q, want 15m/7d", cfg.JWTAccessExpires, cfg.JWTRefreshExpires)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.OTPLength != 6 || cfg.OTPTTLMinutes != 10 {
		t.Errorf("OTP = %d digits/%d min, want 6/10", cfg.OTPLength, cfg.OTPTTLMinutes)
	}
	if cfg.MailPort != 587 {
		t.Errorf("MailPort = %d, want 587", cfg.MailPort)
	}
	if cfg.OTPReturnToClient {
		t.Error("OTPReturnToClient should default to false")
	}
	if cfg.AccessTTL() != 15*time.Minute || cfg.RefreshTTL() != 7*24*time.Hour {
		t.Errorf("TTLs = %v/%v", cfg.AccessTTL(), cfg.RefreshTTL())
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	setSecrets(t)
	t.Setenv("GRPC_ADDR", ":9091")
	t.Setenv("JWT_ISSUER", "custom-issuer")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_REFRESH_EXPIRES", "30d")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":9091" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9091")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.RefreshTTL() != 30*24*time.Hour {
		t.Errorf("RefreshTTL = %v, want 720h", cfg.RefreshTTL())
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	if _, err := Load(); !errors.Is(err, security.ErrConfigurationMissing) {
		t.Errorf("missing access secret err = %v, want ErrConfigurationMissing", err)
	}

	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "")
	if _, err := Load(); !errors.Is(err, security.ErrConfigurationMissing) {
		t.Errorf("missing refresh secret err = %v, want ErrConfigurationMissing", err)
	}
}

func TestLoad_SecretsMustDiffer(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")
	if _, err := Load(); err == nil {
		t.Fatal("identical secrets should be rejected")
	}
}

func TestLoadDatabase_SkipsSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/auth")

	cfg, err := LoadDatabase()
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/auth" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoad_BcryptCostRange(t *testing.T) {
	testCases := []struct {
		cost    string
		wantErr bool
	}{
		{"3", true},
		{"4", false},
		{"31", false},
		{"32", true},
	}
	for _, tc := range testCases {
		t.Run(tc.cost, func(t *testing.T) {
			setSecrets(t)
			t.Setenv("BCRYPT_COST", tc.cost)
			_, err := Load()
			if (err != nil) != tc.wantErr {
				t.Errorf("BCRYPT_COST=%s err = %v, wantErr %v", tc.cost, err, tc.wantErr)
			}
		})
	}
}

func TestLoad_InvalidExpires(t *testing.T) {
	setSecrets(t)
	t.Setenv("JWT_ACCESS_EXPIRES", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("invalid JWT_ACCESS_EXPIRES should be rejected")
	}
}

func TestLoad_OTPReturnToClientProduction(t *testing.T) {
	setSecrets(t)
	t.Setenv("OTP_RETURN_TO_CLIENT", "true")
	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("dev OTP mode in production should be rejected")
	}
}

func TestLoad_OTPReturnToClientDevelopment(t *testing.T) {
	setSecrets(t)
	t.Setenv("OTP_RETURN_TO_CLIENT", "true")
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DevOTPEnabled() {
		t.Error("DevOTPEnabled should be true in development")
	}
}

func TestLoad_MailFromRequiredWithHost(t *testing.T) {
	setSecrets(t)
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM", "")
	if _, err := Load(); err == nil {
		t.Fatal("MAIL_HOST without MAIL_FROM should be rejected")
	}
}

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"15m", 15 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{" 1d ", 24 * time.Hour, false},
		{"0s", 0, true},
		{"-5m", 0, true},
		{"0d", 0, true},
		{"xd", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseDuration(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDuration(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAccessTTL_InvalidFallsBack(t *testing.T) {
	cfg := &Config{JWTAccessExpires: "invalid", JWTRefreshExpires: "-1h"}
	if got := cfg.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", got)
	}
	if got := cfg.RefreshTTL(); got != 7*24*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h", got)
	}
}
