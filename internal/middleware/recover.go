package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// RecoverMiddleware converts handler panics into a generic 500 response so a
// single broken request can never take the process down.
type RecoverMiddleware struct {
	logger *slog.Logger
	isDev  bool
}

// NewRecoverMiddleware creates a panic recovery middleware.
func NewRecoverMiddleware(logger *slog.Logger, isDev bool) *RecoverMiddleware {
	return &RecoverMiddleware{logger: logger, isDev: isDev}
}

// Handler returns middleware that recovers panics from downstream handlers.
func (m *RecoverMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("Unbehandelter Fehler",
					"panic", fmt.Sprint(rec),
					"url", r.URL.String(),
					"method", r.Method,
					"ip", getClientIP(r),
					"stack", string(debug.Stack()),
				)

				message := "Ein interner Serverfehler ist aufgetreten."
				if m.isDev {
					message = fmt.Sprint(rec)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"success":   false,
					"message":   message,
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
