package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/crypticorn-ai/apiutils/pkg/async"
	"github.com/crypticorn-ai/apiutils/pkg/auth"
	"github.com/crypticorn-ai/apiutils/pkg/config"
	"github.com/crypticorn-ai/apiutils/pkg/httputil"
	"github.com/crypticorn-ai/apiutils/pkg/middleware"
	"github.com/crypticorn-ai/apiutils/pkg/observability"
)

func main() {
	apiKey := flag.String("api-key", os.Getenv("APIUTILS_DEMO_API_KEY"), "API key granted every scope (generated when empty)")
	flag.Parse()

	if err := run(*apiKey); err != nil {
		log.Fatalf("apiutils-demo: %v", err)
	}
}

func run(apiKey string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := observability.Configure(cfg.LoggerOptions())
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	defer logger.Close()

	keys := auth.NewKeyStore()
	if apiKey == "" {
		if apiKey, err = auth.GenerateKey(); err != nil {
			return err
		}
		logger.Infof("Generated demo API key: %s", apiKey)
	}
	keys.Register(apiKey, "demo", auth.ScopeAll)
	logger.WithField("key_prefix", auth.DisplayPrefix(apiKey)).Info("Demo API key registered")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := newServer(cfg, logger, registry, keys, newItemStore(seedItems()...))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, server, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		logger.Info("Flushing logs")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseURL, _ := cfg.Service.Environment.BaseURL()
	logger.WithFields(map[string]any{
		"addr":        server.Addr,
		"environment": cfg.Service.Environment,
		"base_url":    baseURL,
	}).Infof("Starting %s", cfg.Service.Name)

	async.SafeGo(ctx, logger.Slog(), 0, "http server", func(context.Context) error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel()
			return err
		}
		return nil
	})

	return shutdown.WaitForShutdown(ctx)
}

// newServer assembles the router and middleware stack from cfg
func newServer(cfg *config.Config, logger *observability.Logger, registry *prometheus.Registry, keys *auth.KeyStore, store *itemStore) (http.Handler, error) {
	router := mux.NewRouter()
	errs := httputil.NewErrorWriter(nil)

	health := observability.NewHealthChecker(cfg.Service.Version)
	health.Register("item_store", true, func(context.Context) error {
		if store == nil {
			return errors.New("item store not initialized")
		}
		return nil
	})
	observability.RegisterHealthRoutes(router, health)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(registry, cfg.Metrics.Namespace)
		observability.RegisterMetricsEndpoint(router, cfg.Metrics.Path, registry)
	}

	authn := middleware.NewAuthMiddleware(keys, false, errs)
	newItemsAPI(store, errs).register(router, authn)

	return httputil.Stack(router, httputil.StackOptions{
		Include:      cfg.Middleware(),
		CORS:         cfg.CORSOptions(),
		Metrics:      metrics,
		Logger:       logger,
		Errors:       errs,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
}
