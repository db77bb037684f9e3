package maprender

import (
	"fmt"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/route"
)

type LayerKind string

const (
	KindPolyline LayerKind = "polyline"
	KindMarker   LayerKind = "marker"
)

type Role string

const (
	RoleRoute    Role = "route"
	RoleStart    Role = "start"
	RoleEnd      Role = "end"
	RoleWaypoint Role = "waypoint"
	RolePOI      Role = "poi"
)

// Route and marker colors mirror the web client's palette.
const (
	colorCycling  = "#007bff"
	colorHiking   = "#28a745"
	colorStart    = "#28a745"
	colorEnd      = "#dc3545"
	colorWaypoint = "#ffc107"
	colorPOI      = "#17a2b8"
)

// Layer is one draw command owned by a Renderer: either a polyline through
// ordered points or a single marker. Popup carries the human-readable info
// panel shown on interaction.
type Layer struct {
	Kind    LayerKind      `json:"kind"`
	Role    Role           `json:"role"`
	Points  []route.LatLng `json:"points,omitempty"`
	Point   route.LatLng   `json:"point,omitempty"`
	Color   string         `json:"color"`
	Weight  float64        `json:"weight,omitempty"`
	Opacity float64        `json:"opacity,omitempty"`
	Day     int            `json:"day,omitempty"`
	Popup   string         `json:"popup"`
}

// TileLayer is the base map layer. It is not owned by the renderer's
// redraw cycle and survives every clear.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

func osmTileLayer() TileLayer {
	return TileLayer{
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		MaxZoom:     18,
	}
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Pad grows the box by the given fraction of its own size on every side,
// matching the fitBounds padding of the web map.
func (b Bounds) Pad(ratio float64) Bounds {
	dLat := (b.MaxLat - b.MinLat) * ratio
	dLng := (b.MaxLng - b.MinLng) * ratio
	return Bounds{
		MinLat: b.MinLat - dLat,
		MinLng: b.MinLng - dLng,
		MaxLat: b.MaxLat + dLat,
		MaxLng: b.MaxLng + dLng,
	}
}

func boundsOf(coords []route.Coordinate) Bounds {
	b := Bounds{
		MinLat: coords[0].Lat, MaxLat: coords[0].Lat,
		MinLng: coords[0].Lng, MaxLng: coords[0].Lng,
	}
	for _, c := range coords[1:] {
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
		if c.Lng < b.MinLng {
			b.MinLng = c.Lng
		}
		if c.Lng > b.MaxLng {
			b.MaxLng = c.Lng
		}
	}
	return b
}

// Viewport is what the map surface currently shows. Bounds is nil until a
// non-empty view has been fitted.
type Viewport struct {
	Center route.LatLng `json:"center"`
	Zoom   int          `json:"zoom"`
	Bounds *Bounds      `json:"bounds,omitempty"`
}

func markerPopup(title string, c route.Coordinate) string {
	return fmt.Sprintf("%s\nDay %d\nCoordinates: %.4f, %.4f", title, c.Day, c.Lat, c.Lng)
}

func poiPopup(p route.POI) string {
	return fmt.Sprintf("%s\n%s\nType: %s • Day %d\nCoordinates: %.4f, %.4f",
		p.Name, p.Description, p.Type, p.Day, p.Coordinates.Lat, p.Coordinates.Lng)
}

func routePopup(tripType string, pointCount int, dayInfo *route.DailyRoute) string {
	kind := "Hiking"
	if tripType == "cycling" {
		kind = "Cycling"
	}
	s := fmt.Sprintf("Route info\nType: %s\nPoints: %d", kind, pointCount)
	if dayInfo != nil {
		s += fmt.Sprintf("\nDistance: %.1f km\nEstimated duration: %.1f h\nDifficulty: %s",
			dayInfo.Distance, dayInfo.EstimatedDuration, dayInfo.Difficulty)
	}
	return s
}
