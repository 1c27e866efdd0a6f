package server

import (
	"log/slog"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	authv1 "account-auth/api/auth/v1"
	"account-auth/internal/audit"
	authhandler "account-auth/internal/auth/handler"
	"account-auth/internal/auth/service"
	"account-auth/internal/policy/engine"
	"account-auth/internal/server/interceptors"
	"account-auth/internal/telemetry"
)

const (
	healthCheckMethod = "/grpc.health.v1.Health/Check"
	healthWatchMethod = "/grpc.health.v1.Health/Watch"
)

// Deps holds service dependencies for gRPC handlers.
type Deps struct {
	// Auth is the auth service behind AuthService. Required.
	Auth *service.AuthService
	// Logger is used by handlers for unexpected errors. If nil, slog.Default is used.
	Logger *slog.Logger
	// Health is the standard gRPC health service. If nil, it is not registered.
	Health *health.Server
	// DevOTPHandler is the dev-only DevService (GetOTP). If nil, DevService is not registered.
	// Set only when dev OTP is enabled and not production.
	DevOTPHandler authv1.DevServiceServer
}

// RegisterServices registers the gRPC services with the given server.
//
//   - AuthService → internal/auth/handler
//   - DevService  → internal/devotp/handler (dev OTP mode only)
//   - Health      → google.golang.org/grpc/health
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	authv1.RegisterAuthServiceServer(s, authhandler.NewAuthServer(deps.Auth, deps.Logger))
	if deps.Health != nil {
		healthpb.RegisterHealthServer(s, deps.Health)
	}
	if deps.DevOTPHandler != nil {
		authv1.RegisterDevServiceServer(s, deps.DevOTPHandler)
	}
}

// PublicMethods returns the full method names callable without a bearer token.
func PublicMethods() map[string]bool {
	return map[string]bool{
		authv1.AuthService_Signup_FullMethodName:         true,
		authv1.AuthService_VerifyEmail_FullMethodName:    true,
		authv1.AuthService_Login_FullMethodName:          true,
		authv1.AuthService_Refresh_FullMethodName:        true,
		authv1.AuthService_ForgotPassword_FullMethodName: true,
		authv1.AuthService_ResetPassword_FullMethodName:  true,
		authv1.DevService_GetOTP_FullMethodName:          true,
		healthCheckMethod:                                true,
		healthWatchMethod:                                true,
	}
}

// SkipMethods returns the methods excluded from audit, metrics and telemetry.
func SkipMethods() map[string]bool {
	return map[string]bool{
		healthCheckMethod: true,
		healthWatchMethod: true,
	}
}

// Options configures the interceptor chain of NewServer. Nil fields disable
// the corresponding interceptor, except Tokens and Authorizer which are required.
type Options struct {
	Tokens     interceptors.AccessValidator
	Authorizer engine.Authorizer
	Audit      audit.AuditLogger
	Metrics    interceptors.OperationRecorder
	Events     telemetry.EventEmitter
	// Tracing enables the otelgrpc stats handler.
	Tracing bool
}

// NewServer returns a gRPC server with the interceptor chain:
// metrics, bearer auth, role authorization, telemetry, audit.
func NewServer(opts Options) *grpc.Server {
	skip := SkipMethods()
	chain := []grpc.UnaryServerInterceptor{
		interceptors.AuthUnary(opts.Tokens, PublicMethods()),
		interceptors.AuthorizeUnary(opts.Authorizer),
		interceptors.TelemetryUnary(opts.Events, skip),
		interceptors.AuditUnary(opts.Audit, skip),
	}
	if opts.Metrics != nil {
		chain = append([]grpc.UnaryServerInterceptor{interceptors.MetricsUnary(opts.Metrics, skip)}, chain...)
	}
	serverOpts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(chain...)}
	if opts.Tracing {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	return grpc.NewServer(serverOpts...)
}
