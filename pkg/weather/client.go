package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Payload is the normalized response from the weather provider. It is either
// the provider's decoded JSON document (success shape) or a single-field
// error shape {"error": message}. Provider failures are always folded into
// the payload, never returned as an error.
type Payload map[string]any

// IsError reports whether the payload carries the error shape.
func (p Payload) IsError() bool {
	_, ok := p["error"]
	return ok
}

// ErrorMessage returns the error text for an error-shaped payload.
func (p Payload) ErrorMessage() string {
	if msg, ok := p["error"].(string); ok {
		return msg
	}
	return ""
}

// Client fetches current weather conditions from OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Current fetches the weather for one city in metric units. The call is
// synchronous and is never retried. All failure modes (transport, non-200
// status, unparseable body) come back as an error-shaped payload.
func (c *Client) Current(ctx context.Context, city string) Payload {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Payload{"error": fmt.Sprintf("Request Error: %v", err)}
	}

	res, err := c.client.Do(req)
	if err != nil {
		return Payload{"error": fmt.Sprintf("Request Error: %v", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Payload{"error": fmt.Sprintf("Request Error: %v", err)}
	}

	if res.StatusCode == http.StatusNotFound {
		return Payload{"error": fmt.Sprintf("City %s not found", city)}
	}
	if res.StatusCode != http.StatusOK {
		return Payload{"error": fmt.Sprintf("HTTP Error: status %d", res.StatusCode)}
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Payload{"error": "Failed to parse API response"}
	}

	return payload
}
