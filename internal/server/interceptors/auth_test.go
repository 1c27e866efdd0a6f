package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"account-auth/internal/security"
)

const (
	publicMethod    = "/test.Service/PublicMethod"
	protectedMethod = "/test.Service/ProtectedMethod"
)

func withBearer(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

// identityHandler echoes the account id the interceptor put in context.
func identityHandler(ctx context.Context, req any) (any, error) {
	id, _ := GetAccountID(ctx)
	return id, nil
}

func TestAuthUnary_PublicMethod_NoToken(t *testing.T) {
	interceptor := AuthUnary(security.NewTestTokenIssuer(), map[string]bool{publicMethod: true})

	resp, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: publicMethod}, identityHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "" {
		t.Errorf("account id = %v, want empty", resp)
	}
}

func TestAuthUnary_PublicMethod_InvalidTokenIgnored(t *testing.T) {
	interceptor := AuthUnary(security.NewTestTokenIssuer(), map[string]bool{publicMethod: true})

	_, err := interceptor(withBearer("garbage"), "request", &grpc.UnaryServerInfo{FullMethod: publicMethod}, identityHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
}

func TestAuthUnary_ProtectedMethod_NoToken(t *testing.T) {
	interceptor := AuthUnary(security.NewTestTokenIssuer(), nil)

	_, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, identityHandler)
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", status.Code(err), codes.Unauthenticated)
	}
}

func TestAuthUnary_ProtectedMethod_InvalidToken(t *testing.T) {
	interceptor := AuthUnary(security.NewTestTokenIssuer(), nil)

	_, err := interceptor(withBearer("garbage"), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, identityHandler)
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", status.Code(err), codes.Unauthenticated)
	}
}

func TestAuthUnary_ProtectedMethod_RefreshTokenRejected(t *testing.T) {
	tokens := security.NewTestTokenIssuer()
	refresh, _, err := tokens.SignRefresh(security.Identity{AccountID: "account-1", Role: "USER"})
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	interceptor := AuthUnary(tokens, nil)

	_, err = interceptor(withBearer(refresh), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, identityHandler)
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", status.Code(err), codes.Unauthenticated)
	}
}

func TestAuthUnary_ProtectedMethod_ValidToken(t *testing.T) {
	tokens := security.NewTestTokenIssuer()
	access, _, err := tokens.SignAccess(security.Identity{AccountID: "account-1", Role: "ADMIN", Email: "a@x.io"})
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	interceptor := AuthUnary(tokens, nil)

	var role, email string
	handler := func(ctx context.Context, req any) (any, error) {
		role, _ = GetRole(ctx)
		email, _ = GetEmail(ctx)
		return identityHandler(ctx, req)
	}
	resp, err := interceptor(withBearer(access), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "account-1" {
		t.Errorf("account id = %v, want %q", resp, "account-1")
	}
	if role != "ADMIN" || email != "a@x.io" {
		t.Errorf("role, email = %q, %q", role, email)
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{"no metadata", nil, ""},
		{"bearer", []string{"authorization", "Bearer abc"}, "abc"},
		{"lowercase scheme", []string{"authorization", "bearer abc"}, "abc"},
		{"surrounding spaces", []string{"authorization", "  Bearer   abc  "}, "abc"},
		{"basic scheme", []string{"authorization", "Basic abc"}, ""},
		{"too short", []string{"authorization", "Bear"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.header != nil {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(tt.header...))
			}
			if got := extractBearer(ctx); got != tt.want {
				t.Errorf("extractBearer = %q, want %q", got, tt.want)
			}
		})
	}
}
