package interceptors

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"

	"account-auth/internal/telemetry"
)

type chanEmitter chan *telemetry.Event

func (c chanEmitter) Emit(_ context.Context, e *telemetry.Event) error {
	c <- e
	return nil
}

func TestTelemetryUnary_EmitsRequestEvent(t *testing.T) {
	events := make(chanEmitter, 1)
	ctx := WithIdentity(context.Background(), "account-1", "USER", "a@x.io")

	_, err := TelemetryUnary(events, nil)(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/accountauth.v1.AuthService/Logout"}, okHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	select {
	case e := <-events:
		if e.Type != EventGRPCRequest || e.AccountID != "account-1" {
			t.Errorf("event = %+v", e)
		}
		if e.Attributes["status_code"] != "OK" || e.Attributes["full_method"] != "/accountauth.v1.AuthService/Logout" {
			t.Errorf("attributes = %v", e.Attributes)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event emitted")
	}
}

func TestTelemetryUnary_SkipAndNil(t *testing.T) {
	events := make(chanEmitter, 1)
	skip := map[string]bool{"/grpc.health.v1.Health/Check": true}
	_, _ = TelemetryUnary(events, skip)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, okHandler)
	select {
	case e := <-events:
		t.Errorf("unexpected event %+v", e)
	case <-time.After(50 * time.Millisecond):
	}

	resp, err := TelemetryUnary(nil, nil)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/x/y"}, okHandler)
	if err != nil || resp != "success" {
		t.Errorf("resp, err = %v, %v", resp, err)
	}
}
