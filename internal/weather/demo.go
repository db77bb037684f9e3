package weather

import "time"

// Demo data keeps the weather page alive when no API key is configured
// or the provider is unreachable.

func demoReport(city string, now time.Time) Report {
	return Report{
		City:     city,
		Current:  demoCurrent(city),
		ThreeDay: demoThreeDay(now),
		Weekly:   demoWeekly(now),
		Demo:     true,
	}
}

func demoCurrent(city string) Current {
	var current Current
	current.Name = city
	current.Main.Temp = 28
	current.Main.FeelsLike = 31
	current.Main.Humidity = 65
	current.Main.Pressure = 1013
	current.Weather = []Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}}
	current.Wind.Speed = 3.2
	current.Sys.Country = "IL"
	return current
}

func demoThreeDay(now time.Time) []ForecastDay {
	return []ForecastDay{
		{Date: now.AddDate(0, 0, 1), MaxTemp: 26, MinTemp: 18, Condition: "partly cloudy", Humidity: 60, WindSpeed: 5},
		{Date: now.AddDate(0, 0, 2), MaxTemp: 24, MinTemp: 16, Condition: "cloudy", Humidity: 70, WindSpeed: 8},
		{Date: now.AddDate(0, 0, 3), MaxTemp: 29, MinTemp: 20, Condition: "clear sky", Humidity: 55, WindSpeed: 3},
	}
}

func demoWeekly(now time.Time) []ForecastDay {
	conditions := []string{"clear sky", "partly cloudy", "cloudy", "rain"}
	days := make([]ForecastDay, 0, 7)
	for i := 1; i <= 7; i++ {
		days = append(days, ForecastDay{
			Date:      now.AddDate(0, 0, i),
			MaxTemp:   24 + (i*3)%8,
			MinTemp:   15 + (i*2)%6,
			Condition: conditions[i%len(conditions)],
			Humidity:  50 + (i*7)%30,
			WindSpeed: 2 + i%8,
		})
	}
	return days
}
