package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/planwise/planwise/core/logger"
	"github.com/planwise/planwise/core/model"
)

// Config holds the enrichment service settings.
type Config struct {
	// URL is the endpoint receiving ranked candidates. Empty disables
	// enrichment.
	URL string `json:"url"`
	// TimeoutSeconds bounds one enrichment call. Defaults to 5.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

// Client calls the optional AI recommendation service. Callers must treat
// every error as a cue to keep the engine's own ranking: enrichment is a
// post-processing step, never a dependency of correctness.
type Client struct {
	url    string
	client *http.Client
	log    logger.Logger
}

// NewClient creates a Client from the configuration.
func NewClient(cfg Config, log logger.Logger) *Client {
	cfg.SetDefaults()
	return &Client{
		url:    cfg.URL,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    log,
	}
}

type enrichRequest struct {
	Scope      string                `json:"scope"`
	Candidates []model.CandidateSlot `json:"candidates"`
}

type enrichResponse struct {
	Candidates []model.CandidateSlot `json:"candidates"`
}

// Enrich submits the ranked candidates and returns the re-scored list. The
// response must carry the same number of candidates; anything else is an
// error so the caller falls back to the original ranking.
func (c *Client) Enrich(ctx context.Context, scope string, cands []model.CandidateSlot) ([]model.CandidateSlot, error) {
	body, err := json.Marshal(enrichRequest{Scope: scope, Candidates: cands})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment service returned %s", resp.Status)
	}
	var out enrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Candidates) != len(cands) {
		return nil, fmt.Errorf("enrichment returned %d candidates, expected %d", len(out.Candidates), len(cands))
	}
	return out.Candidates, nil
}
