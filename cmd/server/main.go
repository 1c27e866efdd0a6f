package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	grpchealth "google.golang.org/grpc/health"

	authv1 "account-auth/api/auth/v1"
	accountrepo "account-auth/internal/account/repository"
	"account-auth/internal/audit"
	auditrepo "account-auth/internal/audit/repository"
	"account-auth/internal/auth/service"
	"account-auth/internal/config"
	"account-auth/internal/db"
	"account-auth/internal/devotp"
	devotphandler "account-auth/internal/devotp/handler"
	"account-auth/internal/health"
	"account-auth/internal/logging"
	"account-auth/internal/notify"
	"account-auth/internal/observability"
	"account-auth/internal/otp"
	"account-auth/internal/policy/engine"
	"account-auth/internal/security"
	"account-auth/internal/server"
	"account-auth/internal/server/interceptors"
	"account-auth/internal/telemetry"
	otelsetup "account-auth/internal/telemetry/otel"
)

const serviceName = "account-auth"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.SetDefault(logging.Options{
		Service: serviceName,
		Version: version,
		Format:  cfg.LogFormat,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otelsetup.NewProviders(ctx, otelsetup.Config{
		Endpoint:       cfg.OTelEndpoint,
		ServiceName:    serviceName,
		ServiceVersion: version,
		Insecure:       cfg.OTelInsecure,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()
	events := otelsetup.NewEventEmitter(providers.LoggerProvider)

	var (
		accounts  service.AccountRepo
		auditLogs auditrepo.Repository
		pinger    health.Pinger
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultConnectAttempts)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pool.Close()
		accounts = accountrepo.NewPostgresRepository(pool)
		auditLogs = auditrepo.NewPostgresRepository(pool)
		pinger = pool
	} else {
		logger.Warn("DATABASE_URL not set; accounts are kept in memory and lost on restart")
		accounts = accountrepo.NewMemoryRepository()
		auditLogs = auditrepo.NewMemoryRepository()
	}

	tokens, err := security.NewTokenIssuer(security.TokenConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
		Issuer:        cfg.JWTIssuer,
	})
	if err != nil {
		return fmt.Errorf("tokens: %w", err)
	}

	authz, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	checker := health.NewChecker(pinger, authz)

	var (
		obs     *observability.Server
		metrics *observability.Metrics
		obsErr  <-chan error
	)
	if cfg.MetricsAddr != "" {
		obs = observability.NewServer(cfg.MetricsAddr, checker.Ready)
		metrics = obs.Metrics()
		if obsErr, err = obs.Start(); err != nil {
			return fmt.Errorf("observability: %w", err)
		}
		logger.Info("observability server listening", "addr", obs.Addr())
	}

	mailer, devStore, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}
	async := notify.NewAsync(mailer, logger, func(subject string, _ error) {
		if metrics != nil {
			metrics.RecordOTPDeliveryFailure(notify.Purpose(subject))
		}
	})

	authSvc := service.NewAuthService(
		accounts,
		security.NewHasher(cfg.BcryptCost),
		tokens,
		otp.NewGenerator(),
		async,
		service.WithLogger(logger),
		service.WithEvents(events),
		service.WithOTPPolicy(service.OTPPolicy{Length: cfg.OTPLength, TTLMinutes: cfg.OTPTTLMinutes}),
	)

	opts := server.Options{
		Tokens:     tokens,
		Authorizer: authz,
		Audit:      audit.NewLogger(auditLogs, interceptors.ClientIP),
		Events:     events,
		Tracing:    cfg.OTelEndpoint != "",
	}
	if metrics != nil {
		opts.Metrics = metrics
	}
	srv := server.NewServer(opts)

	hs := grpchealth.NewServer()
	deps := server.Deps{Auth: authSvc, Logger: logger, Health: hs}
	if devStore != nil {
		deps.DevOTPHandler = devotphandler.NewServer(devStore)
	}
	server.RegisterServices(srv, deps)
	go checker.Run(ctx, hs, health.DefaultInterval, authv1.AuthService_ServiceName)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr, "env", cfg.Env, "dev_otp", devStore != nil)
		serveErr <- srv.Serve(lis)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down gRPC server...")
	case err := <-serveErr:
		runErr = fmt.Errorf("serve: %w", err)
	case err, ok := <-obsErr:
		if ok {
			runErr = fmt.Errorf("observability: %w", err)
		}
	}

	hs.Shutdown()
	srv.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := async.Wait(shutdownCtx); err != nil {
		logger.Warn("otp deliveries still pending at shutdown", "error", err)
	}
	time.Sleep(telemetry.ShutdownDrainDuration)
	if obs != nil {
		if err := obs.Stop(shutdownCtx); err != nil {
			logger.Warn("observability server stop failed", "error", err)
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown failed", "error", err)
	}
	logger.Info("gRPC server stopped")
	return runErr
}

// newNotifier picks how OTP codes leave the process. In dev OTP mode codes are
// stored for DevService/GetOTP (in Redis when REDIS_ADDR is set) and the
// returned store is non-nil.
func newNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (notify.Notifier, devotp.Store, error) {
	ttl := time.Duration(cfg.OTPTTLMinutes) * time.Minute
	switch {
	case cfg.DevOTPEnabled():
		var store devotp.Store
		if cfg.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			if err := client.Ping(ctx).Err(); err != nil {
				return nil, nil, fmt.Errorf("redis: %w", err)
			}
			store = devotp.NewRedisStore(client)
		} else {
			store = devotp.NewMemoryStore()
		}
		logger.Warn("dev OTP mode enabled; codes are returned by DevService/GetOTP instead of mailed")
		return notify.NewDevNotifier(store, ttl), store, nil
	case cfg.MailHost != "":
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:       cfg.MailHost,
			Port:       cfg.MailPort,
			Username:   cfg.MailUser,
			Password:   cfg.MailPass,
			From:       cfg.MailFrom,
			Brand:      cfg.MailBrand,
			TTLMinutes: cfg.OTPTTLMinutes,
		}), nil, nil
	default:
		if cfg.Env == "production" {
			return nil, nil, errors.New("MAIL_HOST is required in production")
		}
		logger.Warn("MAIL_HOST not set; OTP emails are dropped")
		return notify.Discard{Logger: logger}, nil, nil
	}
}
