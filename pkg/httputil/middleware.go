package httputil

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/contextkeys"
	"github.com/crypticorn-ai/apiutils/pkg/observability"
)

// HeaderRequestID carries the request ID in requests and responses
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// Chain chains multiple middleware together; the first one is outermost
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// RequestID propagates X-Request-ID or generates a UUID, storing it in the
// context and echoing it on the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(contextkeys.WithRequestID(r.Context(), requestID)))
	})
}

// Logging attaches a request-scoped logger to the context and logs each request
// when it completes
func Logging(logger *observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			base := logger
			if base == nil {
				base = observability.Default()
			}

			ctx := contextkeys.WithRequestStartTime(r.Context(), start)
			ctx = observability.WithLogger(ctx, base)
			r = r.WithContext(ctx)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			observability.FromContext(ctx).WithFields(map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"status":      rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info(fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, rw.statusCode))
		})
	}
}

// Recovery recovers from panics, logs them and writes an unknown_error payload
func Recovery(ew *ErrorWriter) func(http.Handler) http.Handler {
	if ew == nil {
		ew = defaultErrorWriter
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					observability.LogPanic(observability.FromContext(r.Context()), r.Method+" "+r.URL.Path, rec)
					ew.Write(w, r, &apierrors.Error{
						Code:    apierrors.CodeUnknown,
						Message: "internal server error",
						Err:     observability.MustRecover(rec),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// MaxBytes limits the size of request bodies
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// CORSOptions configures cross-origin requests. "*" in AllowedMethods or
// AllowedHeaders allows any value.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
	AllowedMethods   []string
	AllowedHeaders   []string
	MaxAge           time.Duration
}

// DefaultCORSOptions allows the local frontend dev and preview servers
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:4173"},
		AllowCredentials: true,
		AllowedMethods:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		MaxAge:           10 * time.Minute,
	}
}

const corsAllMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

func (o CORSOptions) originAllowed(origin string) bool {
	return slices.Contains(o.AllowedOrigins, "*") || slices.Contains(o.AllowedOrigins, origin)
}

// CORS adds CORS headers and answers preflight requests
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			allowed := opts.originAllowed(origin)
			if allowed {
				if opts.AllowCredentials || !slices.Contains(opts.AllowedOrigins, "*") {
					h.Set("Access-Control-Allow-Origin", origin)
				} else {
					h.Set("Access-Control-Allow-Origin", "*")
				}
				if opts.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if !preflight {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				http.Error(w, "Disallowed CORS origin", http.StatusBadRequest)
				return
			}

			if slices.Contains(opts.AllowedMethods, "*") {
				h.Set("Access-Control-Allow-Methods", corsAllMethods)
			} else {
				h.Set("Access-Control-Allow-Methods", strings.Join(opts.AllowedMethods, ", "))
			}
			if slices.Contains(opts.AllowedHeaders, "*") {
				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					h.Set("Access-Control-Allow-Headers", requested)
				}
			} else if len(opts.AllowedHeaders) > 0 {
				h.Set("Access-Control-Allow-Headers", strings.Join(opts.AllowedHeaders, ", "))
			}
			if opts.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(opts.MaxAge.Seconds())))
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}

// Optional middleware selectable in StackOptions.Include
const (
	MiddlewareCORS    = "cors"
	MiddlewareMetrics = "metrics"
)

// StackOptions selects and configures the standard middleware
type StackOptions struct {
	// Include lists optional middleware by name; nil includes all of them
	Include      []string
	CORS         CORSOptions
	Metrics      *observability.Metrics
	Logger       *observability.Logger
	Errors       *ErrorWriter
	MaxBodyBytes int64
}

// Stack installs the standard middleware around router: request IDs, logging
// and recovery always, CORS and metrics when included. Metrics run inside the
// router so they can label requests by route template.
func Stack(router *mux.Router, opts StackOptions) (http.Handler, error) {
	include := opts.Include
	if include == nil {
		include = []string{MiddlewareCORS, MiddlewareMetrics}
	}
	for _, name := range include {
		if name != MiddlewareCORS && name != MiddlewareMetrics {
			return nil, fmt.Errorf("unknown middleware %q", name)
		}
	}

	if slices.Contains(include, MiddlewareMetrics) {
		if opts.Metrics == nil {
			return nil, fmt.Errorf("middleware %q requires metrics", MiddlewareMetrics)
		}
		router.Use(observability.HTTPMetricsMiddleware(opts.Metrics))
	}

	chain := []func(http.Handler) http.Handler{
		RequestID,
		Logging(opts.Logger),
		Recovery(opts.Errors),
	}
	if slices.Contains(include, MiddlewareCORS) {
		chain = append(chain, CORS(opts.CORS))
	}
	if opts.MaxBodyBytes > 0 {
		chain = append(chain, MaxBytes(opts.MaxBodyBytes))
	}

	return Chain(chain...)(router), nil
}
