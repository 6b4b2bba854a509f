package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jselabs/leaserisk/internal/handlers"
	"github.com/jselabs/leaserisk/internal/models"
	"github.com/jselabs/leaserisk/internal/narrative"
	"github.com/jselabs/leaserisk/internal/refdata"
	"github.com/jselabs/leaserisk/internal/scoring"
	"github.com/jselabs/leaserisk/internal/services"
)

const testArtifact = `{
	"features": ["초기LTV", "보증기간개월", "계절구분_봄"],
	"weights": [1.0, 0.05, -0.4],
	"baseline": [0.8, 48, 0.25],
	"intercept": -2.0
}`

func newRouter(t *testing.T, model *scoring.Model, narrativeURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewPredictionService(
		refdata.NewStore(nil, nil, nil, nil),
		model,
		narrative.NewClient(narrativeURL),
	)
	handler := handlers.NewPredictionHandler(svc)

	router := gin.New()
	router.POST("/predict_and_explain", handler.PredictAndExplain)
	return router
}

func loadTestModel(t *testing.T) *scoring.Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "risk_model.json")
	if err := os.WriteFile(path, []byte(testArtifact), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	m, err := scoring.LoadModel(path)
	if err != nil {
		t.Fatalf("failed to load model: %v", err)
	}
	return m
}

const validBody = `{
	"guarantee_start_month": 202103,
	"guarantee_end_month": 202503,
	"house_value": 100000,
	"lease_deposit_amount": 80000,
	"senior_lien_amount": 10000,
	"region": "서울",
	"property_type": "아파트"
}`

func TestPredictAndExplainEndpoint(t *testing.T) {
	narrativeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer": "steady as she goes"}`))
	}))
	defer narrativeSrv.Close()

	router := newRouter(t, loadTestModel(t), narrativeSrv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict_and_explain", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.FinalResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.RiskScore < 0 || result.RiskScore > 1 {
		t.Errorf("risk score %v out of [0,1]", result.RiskScore)
	}
	if result.AIExplanation != "steady as she goes" {
		t.Errorf("unexpected narrative: %q", result.AIExplanation)
	}
	if result.OriginalInput.Region != "서울" {
		t.Errorf("original input not echoed: %+v", result.OriginalInput)
	}
}

func TestPredictAndExplainEndpointModelUnavailable(t *testing.T) {
	router := newRouter(t, nil, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict_and_explain", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestPredictAndExplainEndpointBadBody(t *testing.T) {
	router := newRouter(t, loadTestModel(t), "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict_and_explain", strings.NewReader(`{"region": "서울"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPredictAndExplainEndpointInvalidMonth(t *testing.T) {
	router := newRouter(t, loadTestModel(t), "")

	body := strings.Replace(validBody, "202103", "209913", 1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict_and_explain", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "bad_request" {
		t.Errorf("unexpected error code: %q", resp.Error)
	}
}
