package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"ninja-fellowship/internal/config"
	"ninja-fellowship/internal/middleware"
	"ninja-fellowship/internal/providers/hrdirectory"
	"ninja-fellowship/internal/proxy"
	"ninja-fellowship/internal/server"
)

func main() {
	addr := flag.String("addr", "", "listen address (default :$PORT)")
	flag.Parse()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(ctx context.Context, cfg config.Server, addr string) error {
	logger := config.Logger(cfg.LogLevel)
	if addr == "" {
		addr = cfg.Addr()
	}

	src := hrdirectory.New(
		cfg.Upstream.URL,
		cfg.Upstream.APIKey,
		hrdirectory.WithAuthScheme(cfg.Upstream.AuthScheme),
		hrdirectory.WithTimeout(cfg.Upstream.Timeout),
		hrdirectory.WithMaxAttempts(cfg.Upstream.MaxAttempts),
	)
	logger.WithFields(logrus.Fields{
		"upstream":     cfg.Upstream.URL,
		"max-attempts": cfg.Upstream.MaxAttempts,
	}).Info("employee proxy configured")

	return newHTTPServer(cfg, src, logger).Serve(ctx, addr, logger)
}

func newHTTPServer(cfg config.Server, src *hrdirectory.Client, logger *logrus.Logger) *server.HTTPServer {
	controllers := []server.Controller{
		server.NewHealthController(),
		proxy.NewEmployeesController(src, logger),
	}
	if cfg.Prometheus.Enabled {
		controllers = append(controllers, server.NewPrometheusController(cfg.Prometheus.Path))
	}

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(logger, middleware.LoggerOptions{RequestIDHeader: cfg.RequestIDHeader}),
	}
	return server.NewHTTPServer(controllers, middlewares, cfg.CORSAllowedOrigins)
}
