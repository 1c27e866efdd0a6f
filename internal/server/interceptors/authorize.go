package interceptors

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-auth/internal/policy/engine"
)

// AuthorizeUnary returns a unary server interceptor that asks authorizer whether
// the caller's role may invoke the method. It must run after AuthUnary. An
// evaluation error denies the call.
func AuthorizeUnary(authorizer engine.Authorizer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		accountID, _ := GetAccountID(ctx)
		role, _ := GetRole(ctx)
		allowed, err := authorizer.Authorize(ctx, engine.Input{
			Method:    info.FullMethod,
			AccountID: accountID,
			Role:      role,
		})
		if err != nil {
			slog.ErrorContext(ctx, "authorize: policy evaluation failed", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.PermissionDenied, "Access denied")
		}
		if !allowed {
			return nil, status.Error(codes.PermissionDenied, "Access denied")
		}
		return handler(ctx, req)
	}
}
