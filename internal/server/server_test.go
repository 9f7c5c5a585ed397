package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/pipeline"
)

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()

	tablePath := filepath.Join(dir, "child_parent.csv")
	table := "child,parent\n99000010,99000020 ||| 99000030\n99000040,\n"
	if err := os.WriteFile(tablePath, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	genizaPath := filepath.Join(dir, "geniza.list")
	if err := os.WriteFile(genizaPath, []byte("99000010\n99000050\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Sources = model.SourcesConfig{
		ChildParentTable: tablePath,
		GenizahList:      genizaPath,
		ManuscriptsList:  filepath.Join(dir, "absent_manuscripts.list"),
		CatalogDB:        filepath.Join(dir, "absent_catalog.db"),
		Optional:         []string{model.SourceManuscripts, model.SourceCatalog},
	}
	cfg.Server.RequestsPerSecond = 1000
	cfg.Server.Burst = 1000
	return cfg
}

func testServer(t *testing.T, cfg *model.Config) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, pipeline.NewPipeline(cfg), logger)
}

func TestStatusEndpoint(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Status  string             `json:"status"`
		Dataset model.DatasetStats `json:"dataset"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status field = %q", body.Status)
	}
	if body.Dataset.Children != 2 {
		t.Errorf("children = %d, want 2", body.Dataset.Children)
	}
}

func TestLookupEndpoint(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/lookup/alma:99000010", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var lookup model.Lookup
	if err := json.NewDecoder(rec.Body).Decode(&lookup); err != nil {
		t.Fatal(err)
	}
	if lookup.ID != "99000010" {
		t.Errorf("ID = %q, want normalized form", lookup.ID)
	}
	if !lookup.IsChild || lookup.IsParent {
		t.Errorf("roles = child:%v parent:%v", lookup.IsChild, lookup.IsParent)
	}
	if !lookup.Membership[model.SourceGenizah] {
		t.Error("expected genizah membership")
	}
	if len(lookup.Parents) != 2 {
		t.Errorf("parents = %v, want 2", lookup.Parents)
	}
}

func TestLookupEndpointRejectsNonIdentifier(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/lookup/not-an-id", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestCatalogEndpointWithoutIndex(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/99000010", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	srv := testServer(t, testConfig(t))

	body := "99000010\n99000040\n99000050\n99000099\n"
	req := httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var rep model.Report
	if err := json.NewDecoder(rec.Body).Decode(&rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Input) != 4 {
		t.Errorf("input = %v, want 4 ids", rep.Input)
	}
	if len(rep.Roles.ChildrenOnly) != 1 || rep.Roles.ChildrenOnly[0] != "99000010" {
		t.Errorf("children_only = %v", rep.Roles.ChildrenOnly)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestClassifyEndpointCachesResponses(t *testing.T) {
	srv := testServer(t, testConfig(t))

	body := "99000010\n"
	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(body)))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if first.Header().Get("X-Cache") == "hit" {
		t.Error("first response should not be a cache hit")
	}

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(body)))
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if second.Header().Get("X-Cache") != "hit" {
		t.Error("second identical upload should be served from cache")
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from original")
	}
}

func TestClassifyEndpointEmptyUpload(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader("# nothing here\n"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestClassifyEndpointBodyLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.MaxBodyBytes = 16
	srv := testServer(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(strings.Repeat("9", 64)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RequestsPerSecond = 0.001
	cfg.Server.Burst = 1
	srv := testServer(t, cfg)

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", second.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/classify", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRunServesAndShutsDown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Bind = "127.0.0.1:0"
	srv := testServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server exited before listening: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start listening")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
