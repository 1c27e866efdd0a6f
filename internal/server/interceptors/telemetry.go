package interceptors

import (
	"context"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"account-auth/internal/telemetry"
)

// EventGRPCRequest is the event type emitted for each RPC.
const EventGRPCRequest = "grpc.request"

// TelemetryUnary returns a unary server interceptor that emits a telemetry event after each RPC.
// Best-effort: emission runs asynchronously and never fails the RPC. If emitter is nil, the
// interceptor no-ops. skipMethods is the set of full method names to not emit (e.g. health checks).
func TelemetryUnary(emitter telemetry.EventEmitter, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if emitter == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		accountID, _ := GetAccountID(ctx)
		telemetry.EmitAsync(emitter, ctx, &telemetry.Event{
			Type:      EventGRPCRequest,
			AccountID: accountID,
			Source:    "grpc_interceptor",
			Attributes: map[string]string{
				"full_method": info.FullMethod,
				"status_code": status.Code(err).String(),
				"duration_ms": strconv.FormatInt(time.Since(start).Milliseconds(), 10),
				"client_ip":   ClientIP(ctx),
			},
		})
		return resp, err
	}
}
