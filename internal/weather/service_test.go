package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func fakeProvider(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	now := time.Now().UTC()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather":
			fmt.Fprintf(w, `{"name":"Haifa","main":{"temp":24.5,"humidity":60},"weather":[{"description":"clear sky","icon":"01d"}],"wind":{"speed":4.1},"sys":{"country":"IL"}}`)
		case "/forecast":
			payload := forecastResponse{List: []forecastItem{
				slot(now.Add(time.Hour), 22, 60, 3, "clear sky", "01d"),
				slot(now.Add(25*time.Hour), 19, 70, 5, "rain", "10d"),
			}}
			json.NewEncoder(w).Encode(payload)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestReportCachesProviderResponse(t *testing.T) {
	var hits int32
	srv := fakeProvider(t, &hits)
	defer srv.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewService(NewClient(srv.URL, "test-key"), cache)

	first, err := svc.Report(context.Background(), "Haifa")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if first.Demo || first.City != "Haifa" {
		t.Fatalf("expected real report, got %+v", first)
	}
	if first.Current.Main.Temp != 24.5 {
		t.Fatalf("unexpected current temp: %v", first.Current.Main.Temp)
	}
	callsAfterFirst := atomic.LoadInt32(&hits)

	second, err := svc.Report(context.Background(), "Haifa")
	if err != nil {
		t.Fatalf("cached report: %v", err)
	}
	if second.City != "Haifa" || atomic.LoadInt32(&hits) != callsAfterFirst {
		t.Fatalf("expected cache hit without provider calls")
	}
}

func TestReportDemoWhenKeyMissing(t *testing.T) {
	svc := NewService(NewClient("http://unused", ""), nil)

	report, err := svc.Report(context.Background(), "Tel Aviv")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !report.Demo || report.City != "Tel Aviv" {
		t.Fatalf("expected demo report, got %+v", report)
	}
	if len(report.ThreeDay) != 3 || len(report.Weekly) != 7 {
		t.Fatalf("demo report should carry full forecasts, got %d/%d", len(report.ThreeDay), len(report.Weekly))
	}
}

func TestReportDemoOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewService(NewClient(srv.URL, "test-key"), cache)
	report, err := svc.Report(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !report.Demo {
		t.Fatalf("expected demo fallback, got %+v", report)
	}

	// Demo answers must not poison the cache.
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty cache, got %v", keys)
	}
}
