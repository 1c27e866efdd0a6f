package engine

import (
	"context"
	"testing"
)

const adminPing = "/accountauth.v1.AuthService/AdminPing"

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	e, err := NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	if err := e.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOPAEvaluator_DefaultPolicy(t *testing.T) {
	e, err := NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	tests := []struct {
		name string
		in   Input
		want bool
	}{
		{"admin calls admin ping", Input{Method: adminPing, AccountID: "a1", Role: "ADMIN"}, true},
		{"user calls admin ping", Input{Method: adminPing, AccountID: "a2", Role: "USER"}, false},
		{"anonymous calls admin ping", Input{Method: adminPing}, false},
		{"user calls logout", Input{Method: "/accountauth.v1.AuthService/Logout", AccountID: "a2", Role: "USER"}, true},
		{"anonymous calls login", Input{Method: "/accountauth.v1.AuthService/Login"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Authorize(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Authorize: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorize(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOPAEvaluator_CustomPolicy(t *testing.T) {
	policy := `package accountauth.rbac

default allow := false

allow if input.role == "ADMIN"
`
	e, err := NewOPAEvaluator(context.Background(), policy)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	ok, err := e.Authorize(context.Background(), Input{Method: "/x.v1.S/M", Role: "USER"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if ok {
		t.Error("custom policy should deny USER")
	}
}

func TestOPAEvaluator_UndefinedDecisionDenies(t *testing.T) {
	// No default: allow is undefined for non-admins.
	policy := `package accountauth.rbac

allow if input.role == "ADMIN"
`
	e, err := NewOPAEvaluator(context.Background(), policy)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	ok, err := e.Authorize(context.Background(), Input{Method: "/x.v1.S/M", Role: "USER"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if ok {
		t.Error("undefined decision should deny")
	}
}

func TestNewOPAEvaluator_InvalidPolicy(t *testing.T) {
	if _, err := NewOPAEvaluator(context.Background(), "package broken\nallow if {"); err == nil {
		t.Fatal("expected compile error")
	}
}
