package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adrec/internal/domain"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"

	"golang.org/x/time/rate"
)

// CampaignClient fetches the cleaned canonical campaign records from the
// data-prep pipeline's export endpoint. Extraction and cleaning happen
// upstream; this client only transports and validates.
type CampaignClient struct {
	client      *http.Client
	url         string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewCampaignClient(url string, timeout time.Duration, ratePerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *CampaignClient {
	return &CampaignClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		url:         url,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
	}
}

// FetchCampaigns retrieves the full record export. Records with negative
// counters are dropped with a warning rather than failing the load.
func (c *CampaignClient) FetchCampaigns(ctx context.Context) ([]domain.CampaignRecord, error) {
	if c.url == "" {
		return nil, fmt.Errorf("campaign source URL not configured")
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("campaigns", "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("campaigns", "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("campaigns", "network_error")
		return nil, fmt.Errorf("failed to fetch campaign records: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("campaigns", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("campaign export returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("campaigns", "read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var records []domain.CampaignRecord
	if err := json.Unmarshal(body, &records); err != nil {
		c.metrics.RecordExternalAPIFailure("campaigns", "json_parse")
		return nil, fmt.Errorf("failed to parse campaign records: %w", err)
	}

	valid := records[:0]
	skipped := 0
	for _, rec := range records {
		if rec.Impressions < 0 || rec.Clicks < 0 || rec.Spend < 0 {
			skipped++
			continue
		}
		valid = append(valid, rec)
	}

	c.metrics.RecordExternalAPICall("campaigns", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      c.url,
		"duration": duration,
		"records":  len(valid),
		"skipped":  skipped,
	}).Info("Successfully fetched campaign records")

	return valid, nil
}
