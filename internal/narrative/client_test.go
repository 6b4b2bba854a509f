package narrative_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jselabs/leaserisk/internal/models"
	"github.com/jselabs/leaserisk/internal/narrative"
)

func sampleResult() models.PredictionResult {
	return models.PredictionResult{
		RiskScore: 0.8123,
		RiskLevel: models.RiskLevelVeryHigh,
		Explanation: []models.FeatureContribution{
			{Feature: "초기LTV", Value: 0.9, Contribution: 0.4321, Description: "increases risk"},
		},
		OriginalInput: models.ContractInput{
			GuaranteeStartMonth: 202103,
			GuaranteeEndMonth:   202503,
			Region:              "서울",
			PropertyType:        "아파트",
		},
	}
}

func TestNarrateSuccess(t *testing.T) {
	var gotQuestion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Question string `json:"question"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("payload is not a question wrapper: %v", err)
		}
		gotQuestion = payload.Question
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "the leverage is unusually high"}`))
	}))
	defer srv.Close()

	client := narrative.NewClient(srv.URL)
	text := client.Narrate(context.Background(), sampleResult())

	if text != "the leverage is unusually high" {
		t.Errorf("unexpected narrative: %q", text)
	}

	// the question field carries the prediction result as a JSON string
	var embedded models.PredictionResult
	if err := json.Unmarshal([]byte(gotQuestion), &embedded); err != nil {
		t.Fatalf("question is not a JSON-encoded prediction result: %v", err)
	}
	if embedded.RiskScore != 0.8123 || embedded.OriginalInput.Region != "서울" {
		t.Errorf("embedded result lost fields: %+v", embedded)
	}
}

func TestNarrateMissingAnswerField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something_else": "x"}`))
	}))
	defer srv.Close()

	text := narrative.NewClient(srv.URL).Narrate(context.Background(), sampleResult())
	if text != "narrative service response did not contain an answer" {
		t.Errorf("unexpected fallback: %q", text)
	}
}

func TestNarrateNonSuccessStatusEmbedsCodeAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	text := narrative.NewClient(srv.URL).Narrate(context.Background(), sampleResult())
	if !strings.Contains(text, "status 500") {
		t.Errorf("fallback must contain the status code, got %q", text)
	}
	if !strings.Contains(text, "upstream exploded") {
		t.Errorf("fallback must contain the response body, got %q", text)
	}
}

func TestNarrateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"answer": "too late"}`))
	}))
	defer srv.Close()

	client := narrative.NewClientWithTimeout(srv.URL, 20*time.Millisecond)
	text := client.Narrate(context.Background(), sampleResult())
	if !strings.HasPrefix(text, "failed to reach narrative service:") {
		t.Errorf("expected the transport fallback, got %q", text)
	}
}

func TestNarrateUnreachableEndpoint(t *testing.T) {
	// a closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	text := narrative.NewClient(url).Narrate(context.Background(), sampleResult())
	if !strings.HasPrefix(text, "failed to reach narrative service:") {
		t.Errorf("expected the transport fallback, got %q", text)
	}
}

func TestNarrateUnconfiguredEndpoint(t *testing.T) {
	text := narrative.NewClient("").Narrate(context.Background(), sampleResult())
	if !strings.HasPrefix(text, "failed to reach narrative service:") {
		t.Errorf("expected the transport fallback, got %q", text)
	}
}

func TestNarrateMalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	text := narrative.NewClient(srv.URL).Narrate(context.Background(), sampleResult())
	if !strings.HasPrefix(text, "failed to reach narrative service:") {
		t.Errorf("expected the transport fallback, got %q", text)
	}
}
