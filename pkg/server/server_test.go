package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3"

	"adforge/pkg/adgen"
	"adforge/pkg/cache"
	"adforge/pkg/marketing"
	"adforge/pkg/research"
	"adforge/pkg/store"
)

type fakeInferencer struct{}

func (fakeInferencer) Infer(_ context.Context, _ *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if strings.Contains(system, "creative marketing director") {
		return "Campaign: Test Drive\n" +
			"1. Core Message: just testing\n" +
			"2. Visual Theme Description:\n" +
			"- Color Palette: gray\n", nil
	}
	return "analysis text", nil
}

func (fakeInferencer) Verify(_ context.Context, result string) (bool, error) {
	return result != "", nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(_ context.Context, _ string) (string, error) {
	return "Title: t\nContent: c\nURL: u\n", nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	manager := cache.NewManager(st)
	inf := fakeInferencer{}

	r := research.NewAgent(inf, fakeSearcher{}, manager)
	m := marketing.NewAgent(inf, manager, st, 3)
	creative := adgen.NewCreativeAgent(inf, manager)
	o := adgen.NewOrchestrator(creative, nil, t.TempDir())

	return NewServer(context.Background(), r, m, o, manager, st)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestGetRoot(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPostResearch(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/research", `{"company": "Acme"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["provenance"] != "freshly-generated" {
		t.Errorf("provenance = %v", resp["provenance"])
	}
	report, _ := resp["report"].(string)
	if !strings.Contains(report, "Research Questions:") {
		t.Errorf("report = %q", report)
	}

	// Second identical request is a cache hit.
	rec = doJSON(t, s, http.MethodPost, "/api/research", `{"company": "Acme"}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["provenance"] != "volatile-hit" {
		t.Errorf("second call provenance = %v", resp["provenance"])
	}
}

func TestPostResearchRequiresCompany(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/research", `{"company": "  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPostCampaigns(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/campaigns", `{"company": "Acme"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID string            `json:"session_id"`
		Campaigns []json.RawMessage `json:"campaigns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("session_id missing")
	}
	if len(resp.Campaigns) != 1 {
		t.Fatalf("campaigns = %d", len(resp.Campaigns))
	}
	if !strings.Contains(string(resp.Campaigns[0]), "Test Drive") {
		t.Errorf("campaign = %s", resp.Campaigns[0])
	}
}

func TestGetStoreStats(t *testing.T) {
	s := newTestServer(t)
	// Generate something so the store has content.
	doJSON(t, s, http.MethodPost, "/api/campaigns", `{"company": "Acme"}`)

	rec := doJSON(t, s, http.MethodGet, "/api/store/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats store.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalDocuments == 0 {
		t.Error("expected documents in the store after a pipeline run")
	}
}

func TestPostInvalidate(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/research", `{"company": "Acme"}`)

	rec := doJSON(t, s, http.MethodPost, "/api/cache/invalidate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// After invalidation the persistent tier answers instead of memory.
	rec = doJSON(t, s, http.MethodPost, "/api/research", `{"company": "Acme"}`)
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["provenance"] != "persistent-hit" {
		t.Errorf("provenance = %v", resp["provenance"])
	}
}
