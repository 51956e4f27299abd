package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openequity/equitypages/internal/config"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	if err := os.MkdirAll(reports, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Output.ReportsDir = reports
	cfg.Output.StocksJSON = filepath.Join(dir, "stocks.json")
	return NewServer(cfg), dir
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(t)
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestStocksServedFromDisk(t *testing.T) {
	s, dir := testServer(t)

	rec := get(t, s, "/api/stocks")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing file status = %d, want 404", rec.Code)
	}

	body := `[{"symbol":"MSFT"}]`
	if err := os.WriteFile(filepath.Join(dir, "stocks.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	rec = get(t, s, "/api/stocks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != body {
		t.Errorf("body = %q, want %q", got, body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("content type = %q, want json", ct)
	}
}

func TestReportBySymbol(t *testing.T) {
	s, dir := testServer(t)

	body := `{"symbol":"MSFT"}`
	path := filepath.Join(dir, "reports", "MSFT.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, url := range []string{"/api/reports/MSFT", "/api/reports/MSFT.json"} {
		rec := get(t, s, url)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", url, rec.Code)
		}
		if got := rec.Body.String(); got != body {
			t.Errorf("%s: body = %q, want %q", url, got, body)
		}
	}

	rec := get(t, s, "/api/reports/UNKNOWN")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown symbol status = %d, want 404", rec.Code)
	}
}

func TestReportsStaticDir(t *testing.T) {
	s, dir := testServer(t)

	if err := os.WriteFile(filepath.Join(dir, "reports", "MSFT.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/reports/MSFT.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:4321")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("expected CORS header for configured origin")
	}
}
