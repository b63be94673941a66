package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mitra-sanitaer/backend/internal/domain"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.EFORBIDDEN:
		return http.StatusForbidden // 403
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// ErrorResponse writes a JSON error response. Status and message come from the
// domain error; internal detail is only exposed in development.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, isDev bool) {
	ErrorResponseWith(w, r, logger, err, isDev, nil)
}

// ErrorResponseWith is ErrorResponse with additional body fields, for endpoints
// whose error shape carries more than the message (stage flags, debug mode).
func ErrorResponseWith(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, isDev bool, extra map[string]interface{}) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	op := domain.ErrorOp(err)
	status := ErrorCodeToHTTPStatus(code)

	logError(logger, r, err, code, op, status)

	body := map[string]interface{}{
		"success":   false,
		"message":   message,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	for k, v := range extra {
		body[k] = v
	}
	if isDev {
		detail := err.Error()
		if cause := errors.Unwrap(err); cause != nil {
			detail = cause.Error()
		}
		body["error"] = detail
	}
	writeJSON(w, status, body)
}

// NotFoundResponse answers unknown routes.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	err := domain.Errorf(domain.ENOTFOUND, "", "Route nicht gefunden")
	ErrorResponseWith(w, r, logger, err, false, map[string]interface{}{
		"path": r.URL.Path,
	})
}

// logError logs the error with appropriate level based on status code.
func logError(logger *slog.Logger, r *http.Request, err error, code, op string, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if op != "" {
		attrs = append(attrs, "op", op)
	}

	// 5xx are server-side issues, 4xx are expected client errors
	if status >= 500 {
		logger.Error("server error", attrs...)
	} else if status >= 400 {
		logger.Info("client error", attrs...)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
