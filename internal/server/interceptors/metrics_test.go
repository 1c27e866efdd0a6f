package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordedOp struct{ operation, outcome string }

type recordingRecorder struct{ ops []recordedOp }

func (r *recordingRecorder) RecordOperation(operation, outcome string) {
	r.ops = append(r.ops, recordedOp{operation, outcome})
}

func TestMetricsUnary(t *testing.T) {
	rec := &recordingRecorder{}
	interceptor := MetricsUnary(rec, map[string]bool{"/grpc.health.v1.Health/Check": true})

	_, _ = interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/accountauth.v1.AuthService/Login"}, okHandler)
	_, _ = interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/accountauth.v1.AuthService/Signup"},
		func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.AlreadyExists, "Email already exists")
		})
	_, _ = interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, okHandler)

	want := []recordedOp{{"Login", "OK"}, {"Signup", "AlreadyExists"}}
	if len(rec.ops) != len(want) {
		t.Fatalf("recorded %d ops, want %d: %+v", len(rec.ops), len(want), rec.ops)
	}
	for i := range want {
		if rec.ops[i] != want[i] {
			t.Errorf("op[%d] = %+v, want %+v", i, rec.ops[i], want[i])
		}
	}
}
