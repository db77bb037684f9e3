package route

import "encoding/json"

// Parse normalizes a raw, possibly partial route payload into a Route.
// It returns nil when the payload has no usable coordinates; callers must
// render an explicit "no route data" state instead of partially drawing.
// Missing or malformed dailyRoutes, pointsOfInterest or totalDays degrade
// to empty values and never fail the parse. The input is never mutated.
func Parse(raw []byte) *Route {
	if len(raw) == 0 {
		return nil
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}

	coords := parseCoordinates(loose["coordinates"])
	if len(coords) == 0 {
		return nil
	}

	r := &Route{Coordinates: coords}

	var daily []DailyRoute
	if err := json.Unmarshal(loose["dailyRoutes"], &daily); err == nil {
		r.DailyRoutes = daily
	}

	var pois []POI
	if err := json.Unmarshal(loose["pointsOfInterest"], &pois); err == nil {
		r.PointsOfInterest = pois
	}

	var dist float64
	if err := json.Unmarshal(loose["totalDistance"], &dist); err == nil {
		r.TotalDistance = dist
	}

	var days int
	if err := json.Unmarshal(loose["totalDays"], &days); err == nil && days > 0 {
		r.TotalDays = days
	}
	if r.TotalDays == 0 {
		r.TotalDays = maxDay(coords)
	}

	return r
}

// FromValue normalizes an already-decoded JSON value (e.g. a field of a
// larger generate response) through the same rules as Parse.
func FromValue(v any) *Route {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return Parse(raw)
}

// parseCoordinates tolerates element-level damage: entries that are not
// objects, or fall outside geographic bounds, are dropped rather than
// failing the whole route. A day of zero is promoted to 1 so older
// single-day payloads without day attribution remain renderable.
func parseCoordinates(raw json.RawMessage) []Coordinate {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	coords := make([]Coordinate, 0, len(elems))
	for _, e := range elems {
		var c Coordinate
		if err := json.Unmarshal(e, &c); err != nil {
			continue
		}
		if c.Day == 0 {
			c.Day = 1
		}
		if !c.Valid() {
			continue
		}
		coords = append(coords, c)
	}
	if len(coords) == 0 {
		return nil
	}
	return coords
}

func maxDay(coords []Coordinate) int {
	max := 0
	for _, c := range coords {
		if c.Day > max {
			max = c.Day
		}
	}
	return max
}
