package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/internal/logging"
	"github.com/heysubinoy/remotekv/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	reg := prometheus.NewRegistry()
	instrumented := store.NewInstrumentedStore(store.NewMemStore(), reg)

	mux := http.NewServeMux()
	NewServer(store.NewService(instrumented, nil)).RegisterRoutes(mux)
	mux.Handle("/stats", StatsHandler(instrumented, hclog.NewNullLogger()))
	mux.Handle("/metrics", MetricsHandler(reg))
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestHTTP_RoundTrip(t *testing.T) {
	mux := newTestMux(t)

	if rec := do(t, mux, http.MethodPost, "/put", `{"key":"Cuba","value":"Havana"}`); rec.Code != http.StatusNoContent {
		t.Fatalf("POST /put status = %d, want 204", rec.Code)
	}

	rec := do(t, mux, http.MethodGet, "/get?key=Cuba", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "Havana" {
		t.Fatalf("GET /get = %d %q, want 200 Havana", rec.Code, rec.Body.String())
	}

	rec = do(t, mux, http.MethodPost, "/delete", `{"key":"Cuba"}`)
	var del struct {
		Removed bool `json:"removed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&del); err != nil || !del.Removed {
		t.Fatalf("POST /delete = %d removed=%v err=%v, want removed", rec.Code, del.Removed, err)
	}

	if rec := do(t, mux, http.MethodGet, "/get?key=Cuba", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestHTTP_BadRequests(t *testing.T) {
	mux := newTestMux(t)
	cases := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodPost, "/get?key=a", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/get", "", http.StatusBadRequest},
		{http.MethodGet, "/put", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/put", "{", http.StatusBadRequest},
		{http.MethodPost, "/put", `{"value":"v"}`, http.StatusBadRequest},
		{http.MethodPost, "/delete", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/stats", "", http.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		if rec := do(t, mux, c.method, c.target, c.body); rec.Code != c.want {
			t.Errorf("%s %s %q status = %d, want %d", c.method, c.target, c.body, rec.Code, c.want)
		}
	}
}

func TestHTTP_Stats(t *testing.T) {
	mux := newTestMux(t)
	do(t, mux, http.MethodPost, "/put", `{"key":"a","value":"1"}`)
	do(t, mux, http.MethodGet, "/get?key=a", "")
	do(t, mux, http.MethodGet, "/get?key=b", "")

	rec := do(t, mux, http.MethodGet, "/stats", "")
	var stats struct {
		Operations map[string]uint64 `json:"operations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode /stats: %v", err)
	}
	if stats.Operations["put"] != 1 || stats.Operations["get"] != 2 {
		t.Errorf("operations = %v, want put 1 get 2", stats.Operations)
	}

	rec = do(t, mux, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), `kvstore_operations_total{op="get"} 2`) {
		t.Errorf("/metrics missing get counter:\n%s", rec.Body.String())
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestStatsHandler_WriteFailureLogged(t *testing.T) {
	var logs bytes.Buffer
	instrumented := store.NewInstrumentedStore(store.NewMemStore(), prometheus.NewRegistry())
	h := StatsHandler(instrumented, logging.New("http", &logs, "info"))

	h.ServeHTTP(brokenWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if !strings.Contains(logs.String(), "failed to write stats") || !strings.Contains(logs.String(), "connection reset by peer") {
		t.Errorf("write failure not logged:\n%s", logs.String())
	}
}
