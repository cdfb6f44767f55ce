// ABOUTME: Entry point for the network capacity planner service
// ABOUTME: Serves the planning API, Prometheus metrics and graceful shutdown

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markalston/network-capacity-planner/cache"
	"github.com/markalston/network-capacity-planner/config"
	"github.com/markalston/network-capacity-planner/handlers"
	"github.com/markalston/network-capacity-planner/logger"
	"github.com/markalston/network-capacity-planner/metrics"
	"github.com/markalston/network-capacity-planner/middleware"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Network Capacity Planner",
		"version", handlers.Version,
		"policy", cfg.EscalationPolicy,
		"max_router_additions", cfg.MaxRouterAdditions,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(ctx, cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := handlers.NewHandler(cfg, c, metrics.New(reg))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}

// newMux registers every API route behind the middleware chain. POST routes
// are rate limited per client IP when enabled.
func newMux(cfg *config.Config, h *handlers.Handler, gatherer prometheus.Gatherer) *http.ServeMux {
	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPlan, time.Minute)
		slog.Info("Rate limiting enabled", "plan_per_minute", cfg.RateLimitPlan)
	}
	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	preflight := make(map[string]bool)
	for _, route := range h.Routes() {
		chain := []func(http.HandlerFunc) http.HandlerFunc{
			middleware.LogRequest,
			middleware.Recover,
			cors,
			middleware.LimitBody(handlers.MaxRequestBodySize),
		}
		if route.Method == http.MethodPost {
			chain = append(chain, middleware.RateLimit(limiter, middleware.ClientIP))
		}
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, chain...))

		if !preflight[route.Path] {
			preflight[route.Path] = true
			mux.HandleFunc(http.MethodOptions+" "+route.Path, cors(func(w http.ResponseWriter, r *http.Request) {}))
		}
	}

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
