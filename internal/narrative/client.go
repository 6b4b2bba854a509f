package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jselabs/leaserisk/internal/models"
)

// The external narrative service gets exactly one attempt per request,
// bounded by this timeout.
const requestTimeout = 20 * time.Second

const fallbackNoAnswer = "narrative service response did not contain an answer"

// Client calls the external narrative-generation endpoint. Every failure
// mode resolves to a display string; Narrate never returns an error.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a narrative client for the configured endpoint
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewClientWithTimeout creates a narrative client with a custom timeout (for testing)
func NewClientWithTimeout(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer *string `json:"answer"`
}

// Narrate serializes the prediction result to a JSON string, wraps it as the
// single "question" field and posts it to the narrative endpoint. On success
// it returns the "answer" field; every other outcome returns a fallback
// sentence describing what went wrong.
func (c *Client) Narrate(ctx context.Context, result models.PredictionResult) string {
	question, err := json.Marshal(result)
	if err != nil {
		return transportFallback(err)
	}
	body, err := json.Marshal(askRequest{Question: string(question)})
	if err != nil {
		return transportFallback(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return transportFallback(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportFallback(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFallback(err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("narrative service error: status %d, response: %s",
			resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var answer askResponse
	if err := json.Unmarshal(raw, &answer); err != nil {
		return transportFallback(err)
	}
	if answer.Answer == nil {
		return fallbackNoAnswer
	}
	return *answer.Answer
}

func transportFallback(err error) string {
	return fmt.Sprintf("failed to reach narrative service: %v", err)
}
