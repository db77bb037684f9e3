package route

import "strconv"

// DayFilter selects either the whole route or a single day. The zero
// value selects all days.
type DayFilter struct {
	day int
}

// AllDays matches every coordinate and POI in a route.
var AllDays = DayFilter{}

// Day returns a filter for a single trip day.
func Day(n int) DayFilter {
	return DayFilter{day: n}
}

// ParseDayFilter reads the wire form of a filter: the sentinel "all",
// an empty string, or a positive integer day. Anything else falls back
// to all days.
func ParseDayFilter(s string) DayFilter {
	if s == "" || s == "all" {
		return AllDays
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return AllDays
	}
	return Day(n)
}

// All reports whether the filter selects every day.
func (f DayFilter) All() bool { return f.day == 0 }

// DayN returns the selected day, or 0 for the all-days filter.
func (f DayFilter) DayN() int { return f.day }

func (f DayFilter) String() string {
	if f.All() {
		return "all"
	}
	return strconv.Itoa(f.day)
}

// View is the day-scoped subset of a Route handed to the renderer.
// DayInfo is nil for the all-days filter and for days with no daily
// breakdown.
type View struct {
	Coordinates      []Coordinate
	PointsOfInterest []POI
	DayInfo          *DailyRoute
}

// Empty reports whether the view has nothing to draw. The renderer must
// not compute a bounding box or polyline for an empty view.
func (v View) Empty() bool { return len(v.Coordinates) == 0 }

// Select derives the filtered view of a route. It is a pure function of
// (r, f): the same inputs always produce structurally equal views, and
// the route is never modified.
func Select(r *Route, f DayFilter) View {
	if r == nil {
		return View{}
	}
	if f.All() {
		return View{
			Coordinates:      append([]Coordinate(nil), r.Coordinates...),
			PointsOfInterest: append([]POI(nil), r.PointsOfInterest...),
		}
	}

	var coords []Coordinate
	for _, c := range r.Coordinates {
		if c.Day == f.day {
			coords = append(coords, c)
		}
	}
	var pois []POI
	for _, p := range r.PointsOfInterest {
		if p.Day == f.day {
			pois = append(pois, p)
		}
	}
	return View{
		Coordinates:      coords,
		PointsOfInterest: pois,
		DayInfo:          r.DayInfo(f.day),
	}
}
