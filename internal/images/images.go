package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// PlaceholderURL is served whenever no real image can be found. Clients
// can rely on every lookup returning a usable URL.
const PlaceholderURL = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&q=80"

// LocationImage is the answer to a location lookup.
type LocationImage struct {
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	Fallback bool   `json:"fallback"`
}

// Client queries an Unsplash-style photo search API.
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

func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no image provider key configured")
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image provider returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Results) == 0 || decoded.Results[0].URLs.Regular == "" {
		return "", fmt.Errorf("no photos for %q", query)
	}
	return decoded.Results[0].URLs.Regular, nil
}

// Service resolves a representative photo for a location, with a fixed
// placeholder when the provider cannot help. Real hits are cached.
type Service struct {
	client *Client
	cache  *redis.Client
}

func NewService(client *Client, cache *redis.Client) *Service {
	return &Service{client: client, cache: cache}
}

func (s *Service) Lookup(ctx context.Context, city, country string) LocationImage {
	query := city
	if country != "" {
		query = city + " " + country
	}
	key := cacheKey(query)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil && cached != "" {
			return LocationImage{URL: cached, Alt: query}
		}
	}

	imageURL, err := s.client.Search(ctx, query)
	if err != nil {
		return LocationImage{URL: PlaceholderURL, Alt: query, Fallback: true}
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, imageURL, cacheTTL)
	}
	return LocationImage{URL: imageURL, Alt: query}
}

func cacheKey(query string) string {
	return "image:" + strings.ToLower(query)
}
