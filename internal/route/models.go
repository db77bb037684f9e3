package route

// LatLng is a bare coordinate pair without day attribution.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinate is a single point of the generated path, tagged with the
// trip day it belongs to.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Day int     `json:"day"`
}

// Valid reports whether the coordinate is inside geographic bounds and
// carries a positive day number.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180 &&
		c.Day >= 1
}

type POI struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Coordinates LatLng `json:"coordinates"`
	Type        string `json:"type"`
	Day         int    `json:"day"`
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	}
	return false
}

type DailyRoute struct {
	Day               int        `json:"day"`
	Distance          float64    `json:"distance"`
	StartPoint        LatLng     `json:"startPoint"`
	EndPoint          LatLng     `json:"endPoint"`
	EstimatedDuration float64    `json:"estimatedDuration"`
	Difficulty        Difficulty `json:"difficulty"`
	PointsOfInterest  []POI      `json:"pointsOfInterest"`
	IsValidDistance   bool       `json:"isValidDistance"`
	TargetRange       string     `json:"targetRange"`
}

// Route is the normalized form of a server-generated trip path. A Route
// produced by Parse always has a non-empty Coordinates slice; every other
// field may be empty and consumers must treat it as optional.
type Route struct {
	Coordinates      []Coordinate `json:"coordinates"`
	DailyRoutes      []DailyRoute `json:"dailyRoutes"`
	TotalDistance    float64      `json:"totalDistance"`
	TotalDays        int          `json:"totalDays"`
	PointsOfInterest []POI        `json:"pointsOfInterest"`
}

// Center is the midpoint of the bounding box over all coordinates. It is
// computed over the full route, not a filtered day, so the initial viewport
// stays stable regardless of the selected day.
func (r *Route) Center() LatLng {
	if len(r.Coordinates) == 0 {
		return LatLng{}
	}
	minLat, maxLat := r.Coordinates[0].Lat, r.Coordinates[0].Lat
	minLng, maxLng := r.Coordinates[0].Lng, r.Coordinates[0].Lng
	for _, c := range r.Coordinates[1:] {
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
		if c.Lng < minLng {
			minLng = c.Lng
		}
		if c.Lng > maxLng {
			maxLng = c.Lng
		}
	}
	return LatLng{Lat: (minLat + maxLat) / 2, Lng: (minLng + maxLng) / 2}
}

// HasContiguousDays reports whether dailyRoutes cover exactly 1..n with
// unique day numbers.
func (r *Route) HasContiguousDays() bool {
	seen := make(map[int]bool, len(r.DailyRoutes))
	for _, d := range r.DailyRoutes {
		if d.Day < 1 || d.Day > len(r.DailyRoutes) || seen[d.Day] {
			return false
		}
		seen[d.Day] = true
	}
	return true
}

// DayInfo returns the daily breakdown for the given day, or nil.
func (r *Route) DayInfo(day int) *DailyRoute {
	for i := range r.DailyRoutes {
		if r.DailyRoutes[i].Day == day {
			return &r.DailyRoutes[i]
		}
	}
	return nil
}
