// Package observability provides structured logging, Prometheus metrics, health
// checks and graceful shutdown.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("request_id", reqID).Error("Request failed")
//
// Configure the package logger with a stdout output and a more verbose file:
//
//	logger, err := observability.Configure(observability.Options{
//		Name:      "trade-api",
//		Level:     observability.InfoLevel,
//		FilePath:  "/var/log/trade-api.log",
//		FileLevel: observability.DebugLevel,
//	})
//	defer logger.Close()
//
// Disable and Enable silence and restore the package logger, e.g. in tests.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry, "")
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//	observability.RegisterMetricsEndpoint(router, "/metrics", registry)
//
// Recorded per request:
//
//	http_requests_total{method, endpoint, status_code, auth_type}
//	http_request_duration_seconds{endpoint, method}
//	http_request_size_bytes{method, endpoint}
//	http_response_size_bytes{method, endpoint}
//
// endpoint is the mux route template (/items/{id}), so paths with IDs do not
// create a series per ID.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(version)
//	checker.Register("keys", true, func(ctx context.Context) error { ... })
//	observability.RegisterHealthRoutes(router, checker)
//
// # Related Packages
//
//   - pkg/config: Logging and metrics configuration
//   - pkg/httputil: Request logging and recovery middleware
package observability
