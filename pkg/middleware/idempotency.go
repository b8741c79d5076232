package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"digilist/pkg/logger"
)

const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore remembers successful responses by key so retried writes
// are answered from the store instead of running twice.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Set(ctx context.Context, key string, response *CachedResponse) error
	Stop()
}

type CachedResponse struct {
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
	Body       []byte      `json:"body"`
	CreatedAt  time.Time   `json:"created_at"`
}

type InMemoryIdempotencyStore struct {
	mu     sync.RWMutex
	store  map[string]*CachedResponse
	ttl    time.Duration
	stopCh chan struct{}
	once   sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		store:  make(map[string]*CachedResponse),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *InMemoryIdempotencyStore) Get(_ context.Context, key string) (*CachedResponse, bool, error) {
	s.mu.RLock()
	response, exists := s.store[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if time.Since(response.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.store, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	return response, true, nil
}

func (s *InMemoryIdempotencyStore) Set(_ context.Context, key string, response *CachedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	response.CreatedAt = time.Now()
	s.store[key] = response
	return nil
}

func (s *InMemoryIdempotencyStore) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, response := range s.store {
				if time.Since(response.CreatedAt) > s.ttl {
					delete(s.store, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rc *responseCapture) WriteHeader(statusCode int) {
	rc.statusCode = statusCode
	rc.ResponseWriter.WriteHeader(statusCode)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Keys are scoped by method and path. Only 2xx responses are stored.
// Store failures are logged and the request runs normally.
func Idempotency(store IdempotencyStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get(IdempotencyHeader)
			if idempotencyKey == "" || r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Method + " " + r.URL.Path + " " + idempotencyKey
			cached, found, err := store.Get(r.Context(), key)
			if err != nil {
				log.Warn("Idempotency store lookup failed",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err,
				)
			}
			if found {
				replayCachedResponse(w, cached)
				return
			}

			capture := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK, body: &bytes.Buffer{}}
			next.ServeHTTP(capture, r)

			if capture.statusCode < 200 || capture.statusCode >= 300 {
				return
			}
			cached = &CachedResponse{
				StatusCode: capture.statusCode,
				Headers:    w.Header().Clone(),
				Body:       capture.body.Bytes(),
			}
			if err := store.Set(context.WithoutCancel(r.Context()), key, cached); err != nil {
				log.Warn("Idempotency store write failed",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err,
				)
			}
		})
	}
}

func replayCachedResponse(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		if key == RequestIDHeader {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
