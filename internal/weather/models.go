package weather

import "time"

// Current mirrors the provider's current-conditions payload, trimmed to
// the fields the client actually shows.
type Current struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ForecastDay is one aggregated day of forecast: min/max over the
// provider's 3-hour slots, condition and icon from the first slot, and
// humidity and wind averaged across the day.
type ForecastDay struct {
	Date      time.Time `json:"date"`
	MaxTemp   int       `json:"maxTemp"`
	MinTemp   int       `json:"minTemp"`
	Condition string    `json:"condition"`
	Icon      string    `json:"icon,omitempty"`
	Humidity  int       `json:"humidity"`
	WindSpeed int       `json:"windSpeed"`
}

// Report is the full weather answer for one city.
type Report struct {
	City     string        `json:"city"`
	Current  Current       `json:"current"`
	ThreeDay []ForecastDay `json:"threeDayForecast"`
	Weekly   []ForecastDay `json:"weeklyForecast"`
	Demo     bool          `json:"demo"`
}

// forecastResponse is the provider's raw 5-day forecast, sliced into
// 3-hour entries.
type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}
