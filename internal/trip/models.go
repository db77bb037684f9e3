package trip

import (
	"time"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/route"
)

type TripType string

const (
	TypeHiking  TripType = "hiking"
	TypeCycling TripType = "cycling"
)

func (t TripType) Valid() bool {
	return t == TypeHiking || t == TypeCycling
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Trip is a persisted, user-owned trip. Route is nil when the stored route
// payload had no usable coordinates; consumers render a "no route data"
// state for it rather than a partial map.
type Trip struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Country          string       `json:"country"`
	City             string       `json:"city"`
	TripType         TripType     `json:"tripType"`
	Route            *route.Route `json:"route"`
	PointsOfInterest []route.POI  `json:"pointsOfInterest"`
	Image            Image        `json:"image"`
	Tags             []string     `json:"tags"`
	Status           Status       `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// SaveRequest is the strictly-typed, server-safe shape a generated trip is
// coerced into before persisting. Produced by NormalizeSaveable.
type SaveRequest struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Country          string      `json:"country"`
	City             string      `json:"city"`
	TripType         TripType    `json:"tripType"`
	Route            SaveRoute   `json:"route"`
	PointsOfInterest []route.POI `json:"pointsOfInterest"`
	Image            Image       `json:"image"`
	Tags             []string    `json:"tags"`
}

type SaveRoute struct {
	Coordinates      []route.Coordinate `json:"coordinates"`
	DailyRoutes      []route.DailyRoute `json:"dailyRoutes"`
	TotalDistance    float64            `json:"totalDistance"`
	TotalDays        int                `json:"totalDays"`
	PointsOfInterest []route.POI        `json:"pointsOfInterest"`
}

// UserStats summarizes a user's saved trips for the list endpoint.
type UserStats struct {
	TotalTrips int     `json:"totalTrips"`
	HikingKm   float64 `json:"hikingKm"`
	CyclingKm  float64 `json:"cyclingKm"`
	Countries  int     `json:"countries"`
}

// GenerateRequest is forwarded to the external route planner.
type GenerateRequest struct {
	City     string   `json:"city"`
	TripType TripType `json:"tripType"`
	Days     int      `json:"days"`
}

// GeneratedTrip is the planner's response. Arrays inside it are NOT
// trusted; they pass through NormalizeSaveable before any persist.
type GeneratedTrip struct {
	Country          string         `json:"country"`
	City             string         `json:"city"`
	TripType         TripType       `json:"tripType"`
	Route            map[string]any `json:"route"`
	PointsOfInterest any            `json:"pointsOfInterest"`
	Image            Image          `json:"image"`
	Tags             []string       `json:"tags"`
	Weather          map[string]any `json:"weather,omitempty"`
}
