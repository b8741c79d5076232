package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "digilist/pkg/errors"
	"digilist/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(body))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON error body, got %q", rec.Body.String())
	}
	return resp
}

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid request id, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("expected request id echoed in header")
	}
}

func TestRequestLogging_KeepsIncomingRequestID(t *testing.T) {
	incoming := uuid.NewString()
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != incoming {
		t.Errorf("expected %s, got %s", incoming, seen)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.CodeInternal {
		t.Errorf("expected internal error code, got %s", resp.Code)
	}
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(logger.Discard())(okHandler(`{}`))

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, "application/json", http.StatusCreated},
		{"json with charset", http.MethodPatch, "application/json; charset=utf-8", http.StatusCreated},
		{"form post", http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing on post", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"get without body", http.MethodGet, "", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/bookings", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	h := MaxRequestSize(8)(okHandler(`{}`))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"far too long"}`)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		time.Sleep(5 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "late") {
		t.Errorf("late write should be dropped")
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil, logger.Discard())
	defer rl.Stop()
	h := RateLimit(rl)(okHandler(`{}`))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if send("10.0.0.1:1111") != http.StatusCreated || send("10.0.0.1:2222") != http.StatusCreated {
		t.Fatal("first two requests should pass")
	}
	if code := send("10.0.0.1:3333"); code != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %d", code)
	}
	if code := send("10.0.0.2:1111"); code != http.StatusCreated {
		t.Errorf("other clients have their own bucket, got %d", code)
	}
}

func TestClientIP_IgnoresForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	if got := ClientIP(req); got != "192.0.2.10" {
		t.Errorf("expected remote host, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := ClientIP(req); got != "192.0.2.10" {
		t.Errorf("expected spoofed header to be ignored, got %s", got)
	}
}

func TestProxiedClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct client", "192.0.2.10:5555", "", "192.0.2.10"},
		{"untrusted peer cannot forward", "192.0.2.10:5555", "198.51.100.7", "192.0.2.10"},
		{"trusted proxy", "10.0.0.1:443", "198.51.100.7", "198.51.100.7"},
		{"spoofed leading hop", "10.0.0.1:443", "203.0.113.9, 198.51.100.7", "198.51.100.7"},
		{"proxy chain", "10.0.0.1:443", "198.51.100.7, 10.0.0.2", "198.51.100.7"},
		{"proxy without header", "10.0.0.1:443", "", "10.0.0.1"},
	}

	keyFunc := ProxiedClientIP(trusted)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := keyFunc(req); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRateLimit_SpoofedForwardedForSharesBucket(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil, logger.Discard())
	defer rl.Stop()
	h := RateLimit(rl)(okHandler(`{}`))

	for i, fwd := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		want := http.StatusCreated
		if i == 1 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Errorf("request %d: got %d, want %d", i+1, rec.Code, want)
		}
	}
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"call":` + string(rune('0'+n)) + `}`))
	}))

	send := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeader, key)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("/api/v1/bookings", "k1")
	second := send("/api/v1/bookings", "k1")

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
	if second.Body.String() != first.Body.String() || second.Code != http.StatusCreated {
		t.Errorf("expected replay of %q, got %d %q", first.Body.String(), second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Errorf("expected replay marker header")
	}

	send("/api/v1/listings", "k1")
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("same key on another path must not replay")
	}
}

func TestIdempotency_DoesNotStoreFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(IdempotencyHeader, "k2")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("failed responses must not be replayed, handler ran %d times", calls)
	}
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	store := NewRedisIdempotencyStore(rdb, time.Hour)

	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from unreachable redis")
	}

	h := Idempotency(store, logger.Discard())(okHandler(`{"ok":true}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set(IdempotencyHeader, "k3")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("request should still be served, got %d", rec.Code)
	}
}
