package trip

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/db"
	"github.com/DianaGur/Trip-Planner-Fullstack/internal/route"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrSuperseded = errors.New("generate request superseded by a newer one")
	ErrValidation = errors.New("invalid generate request")
)

type Service struct {
	db      db.Querier
	planner Generator
	tokens  *requestTokens
}

func NewService(db db.Querier, planner Generator) *Service {
	return &Service{
		db:      db,
		planner: planner,
		tokens:  newRequestTokens(),
	}
}

// GenerateTrip validates the request and forwards it to the planner. Each
// call takes a fresh request token; if a newer generate for the same user
// was issued while this one was in flight, the late response is dropped.
func (s *Service) GenerateTrip(ctx context.Context, userID string, req GenerateRequest) (GeneratedTrip, error) {
	if req.City == "" {
		return GeneratedTrip{}, ErrValidation
	}
	if !req.TripType.Valid() {
		return GeneratedTrip{}, ErrValidation
	}
	if req.Days < 1 {
		return GeneratedTrip{}, ErrValidation
	}
	if req.TripType == TypeCycling && req.Days < 2 {
		return GeneratedTrip{}, ErrValidation
	}

	token := s.tokens.next(userID)

	generated, err := s.planner.Generate(ctx, req)
	if err != nil {
		return GeneratedTrip{}, err
	}
	if !s.tokens.isLatest(userID, token) {
		return GeneratedTrip{}, ErrSuperseded
	}
	return generated, nil
}

func (s *Service) SaveTrip(ctx context.Context, userID string, req SaveRequest) (Trip, error) {
	routeJSON, err := json.Marshal(req.Route)
	if err != nil {
		return Trip{}, err
	}
	poisJSON, err := json.Marshal(req.PointsOfInterest)
	if err != nil {
		return Trip{}, err
	}
	imageJSON, err := json.Marshal(req.Image)
	if err != nil {
		return Trip{}, err
	}
	tagsJSON, err := json.Marshal(req.Tags)
	if err != nil {
		return Trip{}, err
	}

	t := Trip{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		Description:      req.Description,
		Country:          req.Country,
		City:             req.City,
		TripType:         req.TripType,
		Route:            route.FromValue(req.Route),
		PointsOfInterest: req.PointsOfInterest,
		Image:            req.Image,
		Tags:             req.Tags,
		Status:           StatusPlanned,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, name, description, country, city, trip_type, route, points_of_interest, image, tags, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at
	`, t.ID, t.UserID, t.Name, t.Description, t.Country, t.City, t.TripType, routeJSON, poisJSON, imageJSON, tagsJSON, t.Status)
	if err := row.Scan(&t.CreatedAt); err != nil {
		return Trip{}, err
	}
	return t, nil
}

// GetTrip loads one trip. Lookups are scoped to the owning user, so a
// foreign trip id answers the same way as a nonexistent one.
func (s *Service) GetTrip(ctx context.Context, id, userID string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, description, country, city, trip_type, route, points_of_interest, image, tags, status, created_at
		FROM trips WHERE id=$1 AND user_id=$2
	`, id, userID)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, ErrNotFound
		}
		return Trip{}, err
	}
	return t, nil
}

func (s *Service) ListTrips(ctx context.Context, userID string) ([]Trip, UserStats, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, description, country, city, trip_type, route, points_of_interest, image, tags, status, created_at
		FROM trips WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, UserStats{}, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, UserStats{}, err
		}
		trips = append(trips, t)
	}
	return trips, statsFor(trips), nil
}

func (s *Service) DeleteTrip(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the aggregate figures plus the five most recent trips.
func (s *Service) Stats(ctx context.Context, userID string) (UserStats, []Trip, error) {
	trips, stats, err := s.ListTrips(ctx, userID)
	if err != nil {
		return UserStats{}, nil, err
	}
	recent := trips
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return stats, recent, nil
}

func statsFor(trips []Trip) UserStats {
	stats := UserStats{TotalTrips: len(trips)}
	countries := map[string]bool{}
	for _, t := range trips {
		if t.Country != "" {
			countries[t.Country] = true
		}
		if t.Route == nil {
			continue
		}
		switch t.TripType {
		case TypeCycling:
			stats.CyclingKm += t.Route.TotalDistance
		default:
			stats.HikingKm += t.Route.TotalDistance
		}
	}
	stats.Countries = len(countries)
	return stats
}

// scanTrip reads one trips row. The stored route payload goes back through
// the route data model, so a trip saved with a damaged route surfaces as
// Route == nil rather than a half-usable value.
func scanTrip(row pgx.Row) (Trip, error) {
	var (
		t         Trip
		routeJSON []byte
		poisJSON  []byte
		imageJSON []byte
		tagsJSON  []byte
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Country, &t.City, &t.TripType,
		&routeJSON, &poisJSON, &imageJSON, &tagsJSON, &t.Status, &t.CreatedAt); err != nil {
		return Trip{}, err
	}

	t.Route = route.Parse(routeJSON)
	_ = json.Unmarshal(poisJSON, &t.PointsOfInterest)
	_ = json.Unmarshal(imageJSON, &t.Image)
	_ = json.Unmarshal(tagsJSON, &t.Tags)
	return t, nil
}
