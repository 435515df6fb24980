// Package config provides application configuration management from environment variables.
//
// # Overview
//
// LoadConfig starts from Default, applies the YAML file named by APIUTILS_CONFIG_FILE
// when set, then environment overrides, then validates the result.
//
// # Configuration Structure
//
// Service settings:
//
//	APIUTILS_SERVICE_NAME="trade-api"
//	APIUTILS_ENV="prod"  # prod, dev, local, docker
//
// Server settings:
//
//	APIUTILS_HOST="0.0.0.0"
//	APIUTILS_PORT="8080"
//	APIUTILS_READ_TIMEOUT="15s"
//	APIUTILS_WRITE_TIMEOUT="15s"
//	APIUTILS_MAX_BODY_BYTES="1048576"
//
// Logging settings:
//
//	APIUTILS_LOG_LEVEL="info"  # debug, info, warn, error
//	APIUTILS_LOG_FORMAT="json" # json, text
//	APIUTILS_LOG_FILE="/var/log/trade-api.log"
//	APIUTILS_LOG_FILE_LEVEL="debug"
//
// Metrics and CORS settings:
//
//	APIUTILS_METRICS_ENABLED="true"
//	APIUTILS_METRICS_NAMESPACE="trade"
//	APIUTILS_METRICS_PATH="/metrics"
//	APIUTILS_CORS_ENABLED="true"
//	APIUTILS_CORS_ALLOWED_ORIGINS="https://app.crypticorn.com,http://localhost:5173"
//
// The same keys nest under service, server, logging, metrics and cors in the YAML file.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger, err := observability.Configure(cfg.LoggerOptions())
//	baseURL, _ := cfg.Service.Environment.BaseURL()
//
// # Related Packages
//
//   - pkg/observability: Logger options
//   - pkg/httputil: CORS options and middleware selection
package config
