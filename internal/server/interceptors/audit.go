package interceptors

import (
	"context"
	"encoding/json"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"account-auth/internal/audit"
)

// accountIdentified is implemented by request and response messages that name an account.
type accountIdentified interface {
	GetAccountId() string
}

type auditMetadata struct {
	Code string `json:"code"`
}

// AuditUnary returns a unary server interceptor that records an audit log entry after each RPC.
// skipMethods is the set of full method names to not audit (e.g. health checks).
// The account is taken from the authenticated context, else from the response or
// request message. Anonymous failures (e.g. login with an unknown email) are recorded
// with no account. LogEvent is best-effort and never fails the RPC.
func AuditUnary(logger audit.AuditLogger, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if logger == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		accountID := auditAccountID(ctx, req, resp)
		ar := audit.ParseFullMethod(info.FullMethod)
		meta, _ := json.Marshal(auditMetadata{Code: status.Code(err).String()})
		logger.LogEvent(ctx, accountID, ar.Action, ar.Resource, string(meta))
		return resp, err
	}
}

func auditAccountID(ctx context.Context, req, resp any) string {
	if id, _ := GetAccountID(ctx); id != "" {
		return id
	}
	if r, ok := resp.(accountIdentified); ok {
		if id := r.GetAccountId(); id != "" {
			return id
		}
	}
	if r, ok := req.(accountIdentified); ok {
		return r.GetAccountId()
	}
	return ""
}

// ClientIP returns the client IP from gRPC metadata (x-forwarded-for, x-real-ip) or peer, or "unknown".
func ClientIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get("x-forwarded-for"); len(vals) > 0 {
			if s := strings.TrimSpace(vals[0]); s != "" {
				if i := strings.Index(s, ","); i > 0 {
					s = strings.TrimSpace(s[:i])
				}
				return s
			}
		}
		if vals := md.Get("x-real-ip"); len(vals) > 0 {
			if s := strings.TrimSpace(vals[0]); s != "" {
				return s
			}
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}
