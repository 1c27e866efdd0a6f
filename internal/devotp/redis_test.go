package devotp

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
}

func TestRedisStore_PutExpiredIsNoop(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	s := NewRedisStore(client)

	// No network round trip happens for an already expired code.
	if err := s.Put(context.Background(), "a@x.io", "123456", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Put expired: %v", err)
	}
}

func TestRedisStore_ErrorsAreWrapped(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	s := NewRedisStore(client)
	ctx := context.Background()

	if err := s.Put(ctx, "a@x.io", "123456", time.Now().Add(time.Minute)); err == nil {
		t.Error("Put against unreachable redis should fail")
	}
	if _, ok, err := s.Get(ctx, "a@x.io"); err == nil || ok {
		t.Errorf("Get against unreachable redis: ok=%v err=%v", ok, err)
	}
}

func TestRedisKey(t *testing.T) {
	if got := redisKey("a@x.io"); got != "devotp:a@x.io" {
		t.Errorf("redisKey = %q", got)
	}
}
