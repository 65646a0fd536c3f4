package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adrec/pkg/logger"
	"adrec/pkg/metrics"

	"golang.org/x/time/rate"
)

// EmbeddingClient implements domain.Embedder against an OpenAI-compatible
// embeddings endpoint. No retries: the match pipeline treats an embedding
// failure as a hard error for that query.
type EmbeddingClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewEmbeddingClient(baseURL, apiKey, model string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *EmbeddingClient {
	return &EmbeddingClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed returns one vector per input, ordered like the inputs regardless of
// response order.
func (c *EmbeddingClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(embeddingsRequest{Model: c.model, Input: inputs})
	if err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "json_marshal")
		return nil, fmt.Errorf("failed to marshal embeddings request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/embeddings", bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "network_error")
		return nil, fmt.Errorf("failed to call embedding API: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("embeddings", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("embedding API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed embeddingsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.metrics.RecordExternalAPIFailure("embeddings", "json_parse")
		return nil, fmt.Errorf("failed to parse embeddings response: %w", err)
	}

	out := make([][]float32, len(inputs))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			vec[i] = float32(f)
		}
		out[d.Index] = vec
	}
	for i := range out {
		if out[i] == nil {
			c.metrics.RecordExternalAPIFailure("embeddings", "missing_vector")
			return nil, fmt.Errorf("embedding API returned no vector for input %d", i)
		}
	}

	c.metrics.RecordExternalAPICall("embeddings", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"inputs":   len(inputs),
		"duration": duration,
	}).Debug("Fetched embeddings")

	return out, nil
}
