package quota

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(nil, 0, time.Hour, zerolog.Nop())

	if limiter.Enabled() {
		t.Error("limiter with zero limit should be disabled")
	}
	if !limiter.Allow(context.Background(), "10.0.0.1") {
		t.Error("disabled limiter should always allow")
	}
}

func TestLimiter_EnforcesLimit(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewLimiter(client, 3, time.Hour, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d should be within quota", i+1)
		}
	}

	if limiter.Allow(ctx, "10.0.0.1") {
		t.Error("request over quota should be rejected")
	}

	// A different client has its own budget
	if !limiter.Allow(ctx, "10.0.0.2") {
		t.Error("separate client should not share the quota")
	}
}

func TestLimiter_FailsOpen(t *testing.T) {
	// Client pointing at a closed port
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewLimiter(client, 1, time.Hour, zerolog.Nop())

	if !limiter.Allow(context.Background(), "10.0.0.1") {
		t.Error("limiter should fail open when Redis is unreachable")
	}
}

func TestMiddleware_RejectsOverQuota(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewLimiter(client, 1, time.Hour, zerolog.Nop())

	handler := Middleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/health/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		fwd    string
		want   string
	}{
		{
			name:   "remote addr only",
			remote: "192.168.1.5:12345",
			want:   "192.168.1.5",
		},
		{
			name:   "forwarded header wins",
			remote: "10.0.0.1:12345",
			fwd:    "203.0.113.9",
			want:   "203.0.113.9",
		},
		{
			name:   "forwarded list takes first hop",
			remote: "10.0.0.1:12345",
			fwd:    "203.0.113.9, 10.0.0.1",
			want:   "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.fwd != "" {
				req.Header.Set("X-Forwarded-For", tt.fwd)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}
