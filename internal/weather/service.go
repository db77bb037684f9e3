package weather

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 10 * time.Minute

// Service answers weather queries, caching real provider responses in
// redis. Demo reports are never cached so a recovered provider takes
// over on the next request.
type Service struct {
	client *Client
	cache  *redis.Client
	now    func() time.Time
}

func NewService(client *Client, cache *redis.Client) *Service {
	return &Service{
		client: client,
		cache:  cache,
		now:    time.Now,
	}
}

func (s *Service) Report(ctx context.Context, city string) (Report, error) {
	key := cacheKey(city)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var report Report
			if err := json.Unmarshal(cached, &report); err == nil {
				return report, nil
			}
		}
	}

	if !s.client.HasKey() {
		return demoReport(city, s.now()), nil
	}

	current, err := s.client.CurrentWeather(ctx, city)
	if err != nil {
		return demoReport(city, s.now()), nil
	}
	forecast, err := s.client.Forecast(ctx, city)
	if err != nil {
		return demoReport(city, s.now()), nil
	}

	report := Report{
		City:     current.Name,
		Current:  current,
		ThreeDay: threeDaySummary(forecast, s.now()),
		Weekly:   weeklySummary(forecast),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(report); err == nil {
			s.cache.Set(ctx, key, payload, cacheTTL)
		}
	}
	return report, nil
}

func cacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}
