package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"digilist/pkg/config"
	"digilist/pkg/contracts"
	"digilist/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.RateLimiter
	handler          http.Handler
	onShutdown       []func(context.Context)
}

// NewApplication wires the health endpoints and the service's own routes
// behind the middleware chain.
func NewApplication(cfg *config.Config, appHandler contracts.Handler) *Application {
	a := &Application{cfg: cfg}

	mux := http.NewServeMux()
	health := a.healthHandler()
	mux.Handle("/health", health)
	mux.Handle("/ready", health)
	mux.Handle("/", a.appHandler(appHandler))
	a.handler = mux

	a.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	cfg.Log.Info("HTTP server configured", "port", cfg.Port)

	return a
}

// Handler exposes the complete middleware chain, mostly for tests.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// OnShutdown registers a hook that runs after the server stopped accepting
// requests, e.g. closing a Kafka producer.
func (a *Application) OnShutdown(fn func(context.Context)) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) healthHandler() http.Handler {
	deps := map[string]Pinger{}
	if c := a.cfg.Client; c != nil {
		if c.Mongo != nil {
			deps["mongo"] = PingerFunc(func(ctx context.Context) error { return c.Mongo.Ping(ctx, nil) })
		}
		if c.Redis != nil {
			deps["redis"] = PingerFunc(func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() })
		}
	}

	router := httprouter.New()
	NewHealthHandler(a.cfg.ServiceName, deps, a.cfg.Log).RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

func (a *Application) appHandler(appHandler contracts.Handler) http.Handler {
	router := httprouter.New()
	appHandler.RegisterRoutes(router)

	if a.cfg.Client != nil && a.cfg.Client.Redis != nil {
		a.idempotencyStore = middleware.NewRedisIdempotencyStore(a.cfg.Client.Redis, a.cfg.IdempotencyTTL)
	} else {
		a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	}
	a.rateLimiter = middleware.NewRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, middleware.ProxiedClientIP(a.cfg.TrustedProxyPrefixes()), a.cfg.Log)

	var h http.Handler = router
	h = middleware.Idempotency(a.idempotencyStore, a.cfg.Log)(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.RateLimit(a.rateLimiter)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	return h
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}
	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	for _, fn := range a.onShutdown {
		fn(ctx)
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
