package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"ninja-fellowship/internal/config"
	"ninja-fellowship/internal/providers/hrdirectory"
)

func testConfig(upstream string, metrics bool) config.Server {
	return config.Server{
		Upstream: config.UpstreamOptions{
			URL:         upstream,
			APIKey:      "secret",
			MaxAttempts: 1,
		},
		Prometheus:         config.PrometheusOptions{Enabled: metrics, Path: "/metrics"},
		Port:               3000,
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"*"},
		RequestIDHeader:    "X-Request-ID",
	}
}

func TestServerWiring(t *testing.T) {
	var gotAuth string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[{"email":"ann@example.com","name":"Ann"}]`))
	}))
	defer up.Close()

	cfg := testConfig(up.URL, true)
	src := hrdirectory.New(cfg.Upstream.URL, cfg.Upstream.APIKey)
	h := newHTTPServer(cfg, src, logrus.New()).Handler()

	for path, want := range map[string]int{
		"/api/employees": http.StatusOK,
		"/health":        http.StatusOK,
		"/metrics":       http.StatusOK,
		"/missing":       http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s: got %d, want %d", path, rr.Code, want)
		}
	}
	if gotAuth != "secret" {
		t.Fatalf("Authorization: got %q", gotAuth)
	}
}

func TestServerWithoutMetrics(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0", false)
	src := hrdirectory.New(cfg.Upstream.URL, cfg.Upstream.APIKey)
	h := newHTTPServer(cfg, src, logrus.New()).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("metrics disabled: got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/employees", nil))
	if rr.Code != http.StatusBadRequest || rr.Body.Len() != 0 {
		t.Fatalf("unreachable upstream: got %d %q", rr.Code, rr.Body.String())
	}
}
