package refresh

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// HTTPSource fetches analysis results from an external analyzer's HTTP
// endpoint. A 204 or 404 response means the analyzer has nothing new
// and the tick is skipped.
type HTTPSource struct {
	url       string
	client    *http.Client
	validator *schema.Validator
}

// NewHTTPSource creates an HTTPSource for the given analyzer URL.
func NewHTTPSource(url string, validator *schema.Validator) *HTTPSource {
	return &HTTPSource{
		url:       url,
		client:    &http.Client{Timeout: 15 * time.Second},
		validator: validator,
	}
}

// Fetch pulls and validates the latest analysis result.
func (s *HTTPSource) Fetch(ctx context.Context) (*schema.AnalysisResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build analyzer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch analysis from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyzer response: %w", err)
	}
	return s.validator.ValidateAnalysis(raw)
}
