package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to an OpenWeatherMap-compatible API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// HasKey reports whether real calls are possible at all.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

func (c *Client) CurrentWeather(ctx context.Context, city string) (Current, error) {
	var current Current
	if err := c.get(ctx, "/weather", city, &current); err != nil {
		return Current{}, err
	}
	return current, nil
}

func (c *Client) Forecast(ctx context.Context, city string) (forecastResponse, error) {
	var forecast forecastResponse
	if err := c.get(ctx, "/forecast", city, &forecast); err != nil {
		return forecastResponse{}, err
	}
	return forecast, nil
}

func (c *Client) get(ctx context.Context, path, city string, out any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
