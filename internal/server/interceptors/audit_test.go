package interceptors

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	authv1 "account-auth/api/auth/v1"
)

type auditCall struct {
	accountID, action, resource, metadata string
}

type recordingAuditLogger struct {
	calls []auditCall
}

func (r *recordingAuditLogger) LogEvent(_ context.Context, accountID, action, resource, metadata string) {
	r.calls = append(r.calls, auditCall{accountID, action, resource, metadata})
}

func TestAuditUnary_SkipMethod(t *testing.T) {
	logger := &recordingAuditLogger{}
	interceptor := AuditUnary(logger, map[string]bool{"/grpc.health.v1.Health/Check": true})

	_, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, okHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if len(logger.calls) != 0 {
		t.Errorf("expected no audit entries, got %d", len(logger.calls))
	}
}

func TestAuditUnary_AuthenticatedCaller(t *testing.T) {
	logger := &recordingAuditLogger{}
	ctx := WithIdentity(context.Background(), "account-1", "USER", "a@x.io")

	_, _ = AuditUnary(logger, nil)(ctx, &authv1.LogoutRequest{}, &grpc.UnaryServerInfo{FullMethod: authv1.AuthService_Logout_FullMethodName}, okHandler)

	if len(logger.calls) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(logger.calls))
	}
	want := auditCall{"account-1", "logout", "auth", `{"code":"OK"}`}
	if logger.calls[0] != want {
		t.Errorf("entry = %+v, want %+v", logger.calls[0], want)
	}
}

func TestAuditUnary_AccountFromResponse(t *testing.T) {
	logger := &recordingAuditLogger{}
	handler := func(ctx context.Context, req any) (any, error) {
		return &authv1.SignupResponse{AccountID: "new-account"}, nil
	}

	_, _ = AuditUnary(logger, nil)(context.Background(), &authv1.SignupRequest{}, &grpc.UnaryServerInfo{FullMethod: authv1.AuthService_Signup_FullMethodName}, handler)

	if len(logger.calls) != 1 || logger.calls[0].accountID != "new-account" || logger.calls[0].action != "signup" {
		t.Errorf("entries = %+v", logger.calls)
	}
}

func TestAuditUnary_AccountFromRequestOnFailure(t *testing.T) {
	logger := &recordingAuditLogger{}
	handler := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "Access denied")
	}

	_, err := AuditUnary(logger, nil)(context.Background(), &authv1.RefreshRequest{AccountID: "account-2"}, &grpc.UnaryServerInfo{FullMethod: authv1.AuthService_Refresh_FullMethodName}, handler)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("error must pass through, got %v", err)
	}
	want := auditCall{"account-2", "refresh", "auth", `{"code":"Unauthenticated"}`}
	if len(logger.calls) != 1 || logger.calls[0] != want {
		t.Errorf("entries = %+v, want %+v", logger.calls, want)
	}
}

func TestAuditUnary_AnonymousFailure(t *testing.T) {
	logger := &recordingAuditLogger{}
	handler := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "Invalid credentials")
	}

	_, _ = AuditUnary(logger, nil)(context.Background(), &authv1.LoginRequest{Email: "x@x.io"}, &grpc.UnaryServerInfo{FullMethod: authv1.AuthService_Login_FullMethodName}, handler)

	if len(logger.calls) != 1 || logger.calls[0].accountID != "" || logger.calls[0].action != "login" {
		t.Errorf("entries = %+v", logger.calls)
	}
}

func TestAuditUnary_NilLogger(t *testing.T) {
	resp, err := AuditUnary(nil, nil)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, okHandler)
	if err != nil || resp != "success" {
		t.Errorf("resp, err = %v, %v", resp, err)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"none", context.Background(), "unknown"},
		{
			"x-forwarded-for first hop",
			metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-forwarded-for", "203.0.113.5, 10.0.0.1")),
			"203.0.113.5",
		},
		{
			"x-real-ip",
			metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-real-ip", "198.51.100.7")),
			"198.51.100.7",
		},
		{
			"peer",
			peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 5555}}),
			"192.0.2.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClientIP(tt.ctx); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
