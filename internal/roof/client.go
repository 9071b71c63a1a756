// Package roof calls the roof-analysis service to obtain mounting capacity
// for an address.
package roof

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"quote-engine/internal/common/errors"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/models"
)

// Client is a thin wrapper over the roof-analysis HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Analyze fetches roof capacity for an address. Any transport or non-2xx
// failure surfaces as a retryable upstream error.
func (c *Client) Analyze(ctx context.Context, address string) (*models.RoofCapacity, error) {
	endpoint := fmt.Sprintf("%s/v1/analyze?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewRoofAnalysisUnavailableError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Roof analysis request failed", map[string]interface{}{
			"address": address,
		})
		return nil, errors.NewRoofAnalysisUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewRoofAnalysisUnavailableError(
			fmt.Errorf("roof analysis returned status %d", resp.StatusCode))
	}

	var capacity models.RoofCapacity
	if err := json.NewDecoder(resp.Body).Decode(&capacity); err != nil {
		return nil, errors.NewRoofAnalysisUnavailableError(err)
	}

	c.logger.Debug("Roof analysis completed", map[string]interface{}{
		"address":    address,
		"max_panels": capacity.MaxPanelCount,
	})
	return &capacity, nil
}
