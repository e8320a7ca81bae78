package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// API docs: https://ip-api.com/docs/api:json
// Sample request: http://ip-api.com/json/24.48.0.1?fields=status,message,country,countryCode,region,regionName,city,lat,lon
const (
	defaultBaseURL = "http://ip-api.com"
	responseFields = "status,message,country,countryCode,region,regionName,city,lat,lon"
)

// Client calls the IP geolocation API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a geolocation client. The timeout bounds each lookup
// end to end, including connection setup and body read.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "ipapi-client"),
	}
}

// Lookup resolves a public IP address to a geolocation.
func (c *Client) Lookup(ctx context.Context, ip string) (*GeolocationResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = "/json/" + ip
	q := u.Query()
	q.Set("fields", responseFields)
	u.RawQuery = q.Encode()

	c.logger.Debug("looking up IP geolocation", "ip", ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch geolocation", "ip", ip, "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("geolocation API returned error",
			"status_code", resp.StatusCode,
			"ip", ip,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp GeolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode geolocation response", "ip", ip, "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Status != "success" {
		c.logger.Warn("geolocation lookup rejected upstream", "ip", ip, "message", apiResp.Message)
		return nil, fmt.Errorf("lookup failed: %s", apiResp.Message)
	}

	c.logger.Debug("successfully resolved IP geolocation",
		"ip", ip,
		"city", apiResp.City,
		"country_code", apiResp.CountryCode,
	)

	return &apiResp, nil
}
