package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestRecoverMiddleware_ConvertsPanicTo500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mw := NewRecoverMiddleware(logger, false)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	req := httptest.NewRequest("POST", "/api/contact", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	msg, _ := body["message"].(string)
	if msg != "Ein interner Serverfehler ist aufgetreten." {
		t.Errorf("production response must stay generic, got %q", msg)
	}
	if strings.Contains(rec.Body.String(), "something broke") {
		t.Error("panic detail must not leak outside development")
	}
}

func TestRecoverMiddleware_DevShowsDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mw := NewRecoverMiddleware(logger, true)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	req := httptest.NewRequest("POST", "/api/contact", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "something broke") {
		t.Error("development response should include the panic detail")
	}
}

func TestRecoverMiddleware_PassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mw := NewRecoverMiddleware(logger, false)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected pass-through status, got %d", rec.Code)
	}
}
