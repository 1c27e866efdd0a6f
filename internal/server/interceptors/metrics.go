package interceptors

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// OperationRecorder counts finished RPCs. Implemented by *observability.Metrics.
type OperationRecorder interface {
	RecordOperation(operation, outcome string)
}

// MetricsUnary returns a unary server interceptor that records every RPC outcome
// under the method's short name and its gRPC status code name.
func MetricsUnary(rec OperationRecorder, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if rec != nil && !skipMethods[info.FullMethod] {
			rec.RecordOperation(methodName(info.FullMethod), status.Code(err).String())
		}
		return resp, err
	}
}

func methodName(fullMethod string) string {
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[i+1:]
	}
	return fullMethod
}
