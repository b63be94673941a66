package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func metricsTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMetricsAuth_DisabledPassesThrough(t *testing.T) {
	mw := NewMetricsAuthMiddleware("", "")
	handler := mw.Handler(metricsTestHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 without configured auth, got %d", rec.Code)
	}
}

func TestMetricsAuth_RequiresCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("prometheus", "scrape-secret")
	handler := mw.Handler(metricsTestHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}
}

func TestMetricsAuth_RejectsWrongCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("prometheus", "scrape-secret")
	handler := mw.Handler(metricsTestHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("prometheus", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}
}

func TestMetricsAuth_AcceptsCorrectCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("prometheus", "scrape-secret")
	handler := mw.Handler(metricsTestHandler())

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("prometheus", "scrape-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with correct credentials, got %d", rec.Code)
	}
}
