package weather

import (
	"math"
	"time"
)

type dayBucket struct {
	date     time.Time
	temps    []float64
	cond     []Condition
	humidity []int
	wind     []float64
}

// bucketByDay groups the provider's 3-hour forecast slots into calendar
// days, preserving chronological order. Slots before cutoff are skipped.
func bucketByDay(items []forecastItem, cutoff time.Time) []*dayBucket {
	byKey := map[string]*dayBucket{}
	var ordered []*dayBucket

	for _, item := range items {
		ts := time.Unix(item.Dt, 0).UTC()
		if ts.Before(cutoff) {
			continue
		}

		key := ts.Format("2006-01-02")
		bucket, ok := byKey[key]
		if !ok {
			bucket = &dayBucket{date: ts}
			byKey[key] = bucket
			ordered = append(ordered, bucket)
		}

		bucket.temps = append(bucket.temps, item.Main.Temp)
		if len(item.Weather) > 0 {
			bucket.cond = append(bucket.cond, item.Weather[0])
		}
		bucket.humidity = append(bucket.humidity, item.Main.Humidity)
		bucket.wind = append(bucket.wind, item.Wind.Speed)
	}
	return ordered
}

func (b *dayBucket) summary(withIcon bool) ForecastDay {
	day := ForecastDay{
		Date:      b.date,
		Humidity:  int(math.Round(meanInt(b.humidity))),
		WindSpeed: int(math.Round(mean(b.wind))),
	}
	if len(b.temps) > 0 {
		min, max := b.temps[0], b.temps[0]
		for _, t := range b.temps[1:] {
			if t < min {
				min = t
			}
			if t > max {
				max = t
			}
		}
		day.MinTemp = int(math.Round(min))
		day.MaxTemp = int(math.Round(max))
	}
	if len(b.cond) > 0 {
		day.Condition = b.cond[0].Description
		if withIcon {
			day.Icon = b.cond[0].Icon
		}
	}
	return day
}

// threeDaySummary keeps the first three days from today onward, with
// icons for the detailed cards.
func threeDaySummary(forecast forecastResponse, now time.Time) []ForecastDay {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	buckets := bucketByDay(forecast.List, startOfDay)
	if len(buckets) > 3 {
		buckets = buckets[:3]
	}

	days := make([]ForecastDay, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b.summary(true))
	}
	return days
}

// weeklySummary drops the current day and keeps up to seven following ones.
func weeklySummary(forecast forecastResponse) []ForecastDay {
	buckets := bucketByDay(forecast.List, time.Time{})
	if len(buckets) > 0 {
		buckets = buckets[1:]
	}
	if len(buckets) > 7 {
		buckets = buckets[:7]
	}

	days := make([]ForecastDay, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b.summary(false))
	}
	return days
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func meanInt(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum int
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}
