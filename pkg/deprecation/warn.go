package deprecation

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/crypticorn-ai/apiutils/pkg/observability"
)

// Warner logs each distinct notice once.
type Warner struct {
	logger *observability.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewWarner creates a warner. A nil logger logs through observability.Default()
// at the time of each warning.
func NewWarner(logger *observability.Logger) *Warner {
	return &Warner{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Warn logs n unless an identical notice was logged before. It reports whether
// the notice was logged.
func (w *Warner) Warn(n Notice) bool {
	key := n.Kind() + "\x00" + n.String()

	w.mu.Lock()
	if _, ok := w.seen[key]; ok {
		w.mu.Unlock()
		return false
	}
	w.seen[key] = struct{}{}
	w.mu.Unlock()

	logger := w.logger
	if logger == nil {
		logger = observability.Default()
	}
	fields := map[string]any{"category": n.Kind()}
	if d, ok := n.(*Deprecation); ok {
		fields["since"] = d.Since.String()
		fields["expected_removal"] = d.ExpectedRemoval.String()
	}
	logger.WithFields(fields).Warn(n.String())
	return true
}

// Reset forgets every notice logged so far
func (w *Warner) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.seen)
}

var defaultWarner = NewWarner(nil)

// Warn logs n once per process through the default logger
func Warn(n Notice) bool {
	return defaultWarner.Warn(n)
}

// Middleware marks every response of the wrapped handler with the notice and
// logs it once through w (the package warner when nil).
//
// Deprecations set "Deprecation: true"; all notices add an RFC 7234 Warning header:
//
//	Warning: 299 - "Old endpoint. Deprecated in Crypticorn v2.1 to be removed in v3.0."
func Middleware(n Notice, w *Warner) func(http.Handler) http.Handler {
	if w == nil {
		w = defaultWarner
	}
	warning := fmt.Sprintf("299 - %s", strconv.Quote(n.String()))
	_, deprecated := n.(*Deprecation)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			w.Warn(n)
			if deprecated {
				rw.Header().Set("Deprecation", "true")
			}
			rw.Header().Add("Warning", warning)
			next.ServeHTTP(rw, r)
		})
	}
}
