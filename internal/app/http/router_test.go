package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"cehpoint/site_backend/internal/app/config"
	"cehpoint/site_backend/internal/app/http/handlers"
	"cehpoint/site_backend/internal/domain/ai/consult"
	"cehpoint/site_backend/internal/domain/ai/estimator"
	"cehpoint/site_backend/internal/domain/quote"
	"cehpoint/site_backend/internal/infra/db/postgres"
)

const validBody = `{
  "industry": "ecommerce",
  "projectSummary": "Marketplace for handmade goods",
  "expectedUsers": "0-1000",
  "timeline": "3-6 months",
  "budgetRange": "20L-40L",
  "features": ["User Authentication & Authorization", "Payment Gateway Integration", "Search & Filtering"],
  "contactEmail": "founder@example.com"
}`

type memStore struct {
	mu    sync.Mutex
	items map[string]quote.Proposal
	err   error
}

func newMemStore() *memStore { return &memStore{items: map[string]quote.Proposal{}} }

func (m *memStore) Save(ctx context.Context, p quote.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[p.Number] = p
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (quote.Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return quote.Proposal{}, postgres.ErrNotFound
	}
	return p, nil
}

type failingGenerator struct{}

func (failingGenerator) GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error) {
	return "", errors.New("model unavailable")
}

func newTestRouter(t *testing.T, deps handlers.Deps) http.Handler {
	t.Helper()
	cfg := config.Config{CORSAllowOrigin: "*", InternalToken: "secret"}
	return NewRouter(cfg, deps)
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateQuotation_FallbackWhenModelFails(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(t, handlers.Deps{
		Estimator: estimator.New(failingGenerator{}, nil, estimator.Options{}),
		Store:     store,
	})

	rec := do(t, router, http.MethodPost, "/api/quotation", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "fallback", rec.Header().Get("X-Quotation-Source"))

	var a quote.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, int64(2800000), a.EstimatedCost)
	assert.Equal(t, "16 weeks", a.Timeline)
	assert.Equal(t, 2, a.TeamSize)
	assert.Contains(t, a.SuggestedStack, "Stripe")
	assert.Len(t, a.MVPPlan, 4)
	assert.Equal(t, quote.Breakdown(2800000), a.CostBreakdown)

	id := rec.Header().Get("X-Quotation-Id")
	require.NotEmpty(t, id)
	saved, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "founder@example.com", saved.Request.ContactEmail)
}

func TestCreateQuotation_MissingFieldIs422(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(validBody), &body))
	body["features"] = []string{}
	raw, _ := json.Marshal(body)

	rec := do(t, router, http.MethodPost, "/api/quotation", string(raw), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	out := decodeError(t, rec)
	assert.Equal(t, "features is required", out["error"])
	assert.Equal(t, quote.KindMissingField, out["details"])
}

func TestCreateQuotation_BadJSONIs400(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})
	rec := do(t, router, http.MethodPost, "/api/quotation", `{"industry":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec)["error"])
}

func TestCreateQuotation_WrongMethodIs405(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})
	rec := do(t, router, http.MethodGet, "/api/quotation", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method GET not allowed", decodeError(t, rec)["error"])
}

func TestCreateQuotation_StoreFailureDoesNotFailRequest(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("db down")
	router := newTestRouter(t, handlers.Deps{Store: store})

	rec := do(t, router, http.MethodPost, "/api/quotation", validBody, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuotationPDF(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})
	rec := do(t, router, http.MethodPost, "/api/quotation/pdf", validBody, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "quotation-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestConsultation(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})
	body := `{"answers":{"primaryGoal":["cost-savings"],"workloadType":["web-apps"],"importantFactor":["lower-cost"]}}`

	rec := do(t, router, http.MethodPost, "/api/ai-consultation", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp consult.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Recommendation)
	assert.NotEmpty(t, resp.AWSSolution)
	assert.NotEmpty(t, resp.GCPSolution)
	assert.NotEmpty(t, resp.NextSteps)

	rec = do(t, router, http.MethodPost, "/api/ai-consultation", `{"answers":{}}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "primaryGoal is required", decodeError(t, rec)["error"])
}

func TestGetQuotation(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(t, handlers.Deps{Store: store})

	rec := do(t, router, http.MethodPost, "/api/quotation", validBody, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get("X-Quotation-Id")

	rec = do(t, router, http.MethodGet, "/api/quotations/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	auth := map[string]string{"X-Internal-Token": "secret"}
	rec = do(t, router, http.MethodGet, "/api/quotations/"+id, "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		ID       string         `json:"id"`
		Source   string         `json:"source"`
		Analysis quote.Analysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "fallback", got.Source)
	assert.Equal(t, int64(2800000), got.Analysis.EstimatedCost)

	rec = do(t, router, http.MethodGet, "/api/quotations/unknown", "", auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetQuotation_NoStore(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})
	rec := do(t, router, http.MethodGet, "/api/quotations/abc", "", map[string]string{"X-Internal-Token": "secret"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndPreflight(t *testing.T) {
	router := newTestRouter(t, handlers.Deps{})

	rec := do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(t, router, http.MethodOptions, "/api/quotation", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
