package trip

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/route"
)

// NormalizeSaveable coerces a generated trip into a strictly-typed save
// request. The generation response is not fully trusted: fields that are
// semantically arrays may arrive as strings, null or objects. Strings are
// decoded strictly as JSON and never evaluated; anything that fails to
// decode collapses to an empty sequence. Scalars are coerced or defaulted
// so the outgoing payload never carries NaN, null or unexpected types.
// The function is idempotent: normalizing an already-normalized trip is a
// no-op.
func NormalizeSaveable(raw map[string]any) SaveRequest {
	if raw == nil {
		raw = map[string]any{}
	}

	req := SaveRequest{
		Name:        asString(raw["name"]),
		Description: asString(raw["description"]),
		Country:     asString(raw["country"]),
		City:        asString(raw["city"]),
		TripType:    TripType(asString(raw["tripType"])),
		Image:       normalizeImage(raw["image"]),
		Tags:        normalizeTags(raw["tags"]),
	}
	if !req.TripType.Valid() {
		req.TripType = TypeHiking
	}

	req.PointsOfInterest = normalizePOIs(raw["pointsOfInterest"])

	if r, ok := asRecord(raw["route"]); ok {
		req.Route = normalizeRoute(r)
	}

	return req
}

func normalizeRoute(r map[string]any) SaveRoute {
	out := SaveRoute{
		Coordinates:      normalizeCoordinates(r["coordinates"]),
		TotalDistance:    asFloat(r["totalDistance"]),
		PointsOfInterest: normalizePOIs(r["pointsOfInterest"]),
	}

	days := asInt(r["totalDays"])
	if days < 0 {
		days = 0
	}
	out.TotalDays = days

	for _, item := range asSequence(r["dailyRoutes"]) {
		rec, ok := asRecord(item)
		if !ok {
			continue
		}
		day := asInt(rec["day"])
		if day < 1 {
			day = 1
		}
		out.DailyRoutes = append(out.DailyRoutes, route.DailyRoute{
			Day:               day,
			Distance:          asFloat(rec["distance"]),
			StartPoint:        normalizeLatLng(rec["startPoint"]),
			EndPoint:          normalizeLatLng(rec["endPoint"]),
			EstimatedDuration: asFloat(rec["estimatedDuration"]),
			Difficulty:        normalizeDifficulty(rec["difficulty"]),
			PointsOfInterest:  normalizePOIs(rec["pointsOfInterest"]),
			IsValidDistance:   asBool(rec["isValidDistance"]),
			TargetRange:       asString(rec["targetRange"]),
		})
	}

	return out
}

// normalizePOIs applies the per-field coercion policy: nil and scalars
// become an empty sequence, strings get one strict JSON decode, sequences
// are mapped item by item with non-records dropped.
func normalizePOIs(v any) []route.POI {
	items := asSequence(v)
	pois := make([]route.POI, 0, len(items))
	for _, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			continue
		}
		name := asString(rec["name"])
		if name == "" {
			name = fmt.Sprintf("Point %d", len(pois)+1)
		}
		day := asInt(rec["day"])
		if day < 1 {
			day = 1
		}
		pois = append(pois, route.POI{
			Name:        name,
			Description: asString(rec["description"]),
			Coordinates: normalizeLatLng(rec["coordinates"]),
			Type:        asString(rec["type"]),
			Day:         day,
		})
	}
	return pois
}

func normalizeCoordinates(v any) []route.Coordinate {
	items := asSequence(v)
	coords := make([]route.Coordinate, 0, len(items))
	for _, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			continue
		}
		day := asInt(rec["day"])
		if day < 1 {
			day = 1
		}
		coords = append(coords, route.Coordinate{
			Lat: asFloat(rec["lat"]),
			Lng: asFloat(rec["lng"]),
			Day: day,
		})
	}
	return coords
}

func normalizeLatLng(v any) route.LatLng {
	rec, ok := asRecord(v)
	if !ok {
		return route.LatLng{}
	}
	return route.LatLng{Lat: asFloat(rec["lat"]), Lng: asFloat(rec["lng"])}
}

func normalizeDifficulty(v any) route.Difficulty {
	d := route.Difficulty(asString(v))
	if !d.Valid() {
		return route.DifficultyModerate
	}
	return d
}

func normalizeImage(v any) Image {
	rec, ok := asRecord(v)
	if !ok {
		return Image{}
	}
	return Image{URL: asString(rec["url"]), Alt: asString(rec["alt"])}
}

func normalizeTags(v any) []string {
	items := asSequence(v)
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

// asSequence resolves a possibly-malformed array field. A string gets one
// strict structured decode; decode failure, scalars and records all yield
// an empty sequence. Strings are never executed.
func asSequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(t), &decoded); err != nil {
			return nil
		}
		return decoded
	default:
		// Typed slices arrive when the input was already normalized.
		raw, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var decoded []any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil
		}
		return decoded
	}
}

func asRecord(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case nil:
		return nil, false
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, false
		}
		return decoded, true
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
