package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"
)

// httpClient wraps http.Client with the run's timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
	}
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d from %s", ErrUnhealthy, resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkHealth verifies the service reports healthy.
func (c *httpClient) checkHealth(ctx context.Context, baseURL string) error {
	var health healthResponse
	if err := c.getJSON(ctx, baseURL+"/health", &health); err != nil {
		return err
	}
	if health.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}
	return nil
}

// getPrediction fetches a single mock prediction.
func (c *httpClient) getPrediction(ctx context.Context, baseURL string, patientID string) (predictResponse, error) {
	var pred predictResponse
	url := baseURL + "/predict"
	if patientID != "" {
		url += "?patient_id=" + patientID
	}
	if err := c.getJSON(ctx, url, &pred); err != nil {
		return predictResponse{}, err
	}
	return pred, nil
}

// checkMetrics fetches /metrics and verifies it parses as Prometheus
// exposition text containing the request counter.
func (c *httpClient) checkMetrics(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/metrics", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("metrics request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d from /metrics", ErrUnhealthy, resp.StatusCode)
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadExposition, err)
	}
	if _, ok := families["predictd_api_requests_total"]; !ok {
		return fmt.Errorf("%w: request counter missing", ErrBadExposition)
	}
	return nil
}
