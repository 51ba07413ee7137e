// File: services/knowledge/search.go
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"innkeeper/config"
	"innkeeper/utils"
)

// SearchClient talks to the semantic search sidecar holding the long-form
// house texts (house rules, surroundings, stories about the farm).
type SearchClient struct {
	baseURL   string
	threshold float64
	client    *http.Client
}

// NewSearchClient builds a client from the app configuration; returns nil
// when no sidecar URL is configured.
func NewSearchClient() *SearchClient {
	url := config.AppConfig.SearchServiceURL
	if url == "" {
		return nil
	}
	return &SearchClient{
		baseURL:   url,
		threshold: config.AppConfig.SearchThreshold,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// Query returns the sidecar's answer when its match score clears the
// configured threshold.
func (c *SearchClient) Query(ctx context.Context, query string) (string, bool, error) {
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal search request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", false, fmt.Errorf("failed to decode search response: %w", err)
	}
	if result.Answer == "" || result.Score < c.threshold {
		return "", false, nil
	}
	return result.Answer, true, nil
}

// Search implements the knowledge fallback over the sidecar; failures are
// absorbed, the conversation must keep moving.
func (s *DefaultKnowledgeService) Search(ctx context.Context, query string) (string, bool) {
	if s.Sidecar == nil {
		return "", false
	}
	answer, ok, err := s.Sidecar.Query(ctx, query)
	if err != nil {
		utils.GetLogger().Sugar().Warnw("knowledge search failed", "error", err)
		return "", false
	}
	return answer, ok
}
