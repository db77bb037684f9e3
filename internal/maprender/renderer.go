// Package maprender turns a day-filtered route view into draw commands for
// an interactive map surface: one polyline, start/end/waypoint markers, POI
// markers and a fitted viewport. The renderer owns its layers and replaces
// them wholesale on every redraw; the base tile layer is never touched.
package maprender

import (
	"errors"
	"fmt"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/route"
)

type State string

const (
	StateReady   State = "ready"
	StateNoRoute State = "no route data"
	StateError   State = "map error"
)

var ErrNoContainer = errors.New("maprender: container required")

const (
	defaultZoom    = 13
	boundsPadRatio = 0.1
)

// Renderer binds one map surface to one container and keeps its drawn
// layers consistent with the currently selected day. It is not safe for
// concurrent use; the UI drives it from a single event loop.
type Renderer struct {
	container string
	tripType  string
	route     *route.Route
	base      TileLayer

	filter    route.DayFilter
	layers    []Layer
	viewport  Viewport
	state     State
	redrawing bool
	closed    bool
}

// New builds a renderer for the given container. A nil route, or one the
// data model rejected, yields a renderer in the "no route data" state; it
// draws nothing but is safe to query. The initial center is the bounding
// box midpoint over ALL coordinates so the first view does not depend on
// the day filter.
func New(container string, r *route.Route, tripType string) (*Renderer, error) {
	if container == "" {
		return nil, ErrNoContainer
	}

	ren := &Renderer{
		container: container,
		tripType:  tripType,
		route:     r,
		base:      osmTileLayer(),
		filter:    route.AllDays,
	}

	if r == nil || len(r.Coordinates) == 0 {
		ren.state = StateNoRoute
		return ren, nil
	}

	ren.viewport = Viewport{Center: r.Center(), Zoom: defaultZoom}
	ren.redraw()
	return ren, nil
}

// SetDay switches the day filter and runs the redraw protocol: clear every
// owned layer, re-derive the view, draw it, fit the viewport. Overlapping
// calls while a redraw is in flight are dropped. Panics during drawing are
// contained and surface as the "map error" state.
func (ren *Renderer) SetDay(f route.DayFilter) {
	if ren.closed || ren.state == StateNoRoute {
		return
	}
	if ren.redrawing {
		return
	}
	ren.filter = f
	ren.redraw()
}

func (ren *Renderer) redraw() {
	ren.redrawing = true
	defer func() {
		ren.redrawing = false
		if r := recover(); r != nil {
			ren.layers = nil
			ren.state = StateError
		}
	}()

	// Clear owned layers only; ren.base stays.
	ren.layers = nil
	ren.viewport.Bounds = nil

	view := route.Select(ren.route, ren.filter)
	if view.Empty() {
		ren.state = StateReady
		return
	}

	ren.drawPolyline(view)
	ren.drawRouteMarkers(view.Coordinates)
	ren.drawPOIs(view.PointsOfInterest)
	ren.fitViewport(view.Coordinates)
	ren.state = StateReady
}

func (ren *Renderer) drawPolyline(view route.View) {
	coords := view.Coordinates
	if len(coords) < 2 {
		return
	}

	points := make([]route.LatLng, len(coords))
	for i, c := range coords {
		points[i] = route.LatLng{Lat: c.Lat, Lng: c.Lng}
	}

	color := colorHiking
	if ren.tripType == "cycling" {
		color = colorCycling
	}

	ren.layers = append(ren.layers, Layer{
		Kind:    KindPolyline,
		Role:    RoleRoute,
		Points:  points,
		Color:   color,
		Weight:  4,
		Opacity: 0.8,
		Popup:   routePopup(ren.tripType, len(coords), view.DayInfo),
	})
}

func (ren *Renderer) drawRouteMarkers(coords []route.Coordinate) {
	if len(coords) == 0 {
		return
	}

	start := coords[0]
	ren.layers = append(ren.layers, Layer{
		Kind:  KindMarker,
		Role:  RoleStart,
		Point: route.LatLng{Lat: start.Lat, Lng: start.Lng},
		Color: colorStart,
		Day:   start.Day,
		Popup: markerPopup("Start point", start),
	})

	end := coords[len(coords)-1]
	if end.Lat != start.Lat || end.Lng != start.Lng {
		ren.layers = append(ren.layers, Layer{
			Kind:  KindMarker,
			Role:  RoleEnd,
			Point: route.LatLng{Lat: end.Lat, Lng: end.Lng},
			Color: colorEnd,
			Day:   end.Day,
			Popup: markerPopup("End point", end),
		})
	}

	// Marker density stays bounded no matter how long the route is.
	interval := len(coords) / 5
	if interval < 10 {
		interval = 10
	}
	for i := interval; i < len(coords)-1; i += interval {
		c := coords[i]
		ren.layers = append(ren.layers, Layer{
			Kind:  KindMarker,
			Role:  RoleWaypoint,
			Point: route.LatLng{Lat: c.Lat, Lng: c.Lng},
			Color: colorWaypoint,
			Day:   c.Day,
			Popup: markerPopup(fmt.Sprintf("Waypoint %d", i/interval), c),
		})
	}
}

func (ren *Renderer) drawPOIs(pois []route.POI) {
	for _, p := range pois {
		ren.layers = append(ren.layers, Layer{
			Kind:  KindMarker,
			Role:  RolePOI,
			Point: p.Coordinates,
			Color: colorPOI,
			Day:   p.Day,
			Popup: poiPopup(p),
		})
	}
}

func (ren *Renderer) fitViewport(coords []route.Coordinate) {
	b := boundsOf(coords).Pad(boundsPadRatio)
	ren.viewport.Bounds = &b
}

// Layers returns the draw commands the renderer currently owns, in draw
// order. The base tile layer is reported separately by Base.
func (ren *Renderer) Layers() []Layer {
	return append([]Layer(nil), ren.layers...)
}

func (ren *Renderer) Base() TileLayer { return ren.base }

func (ren *Renderer) Viewport() Viewport { return ren.viewport }

func (ren *Renderer) State() State { return ren.state }

func (ren *Renderer) Filter() route.DayFilter { return ren.filter }

// Close releases the surface and every owned layer. Further SetDay calls
// are no-ops and accessors report an empty renderer.
func (ren *Renderer) Close() {
	if ren.closed {
		return
	}
	ren.closed = true
	ren.layers = nil
	ren.route = nil
	ren.viewport = Viewport{}
}
