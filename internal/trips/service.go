package trips

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/models"
)

type TripDBLayer interface {
	GetTripByID(ctx context.Context, id string) (*models.Trip, error)
	SearchTrips(ctx context.Context, origin, destination string, departureDate *time.Time) ([]models.Trip, error)
	GetFeaturedTrips(ctx context.Context) ([]models.Trip, error)
}

type TripService struct {
	DB TripDBLayer
}

func NewTripService(db TripDBLayer) *TripService {
	return &TripService{DB: db}
}

func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.DB.GetTripByID(ctx, tripID)
}

// Search resolves a search form submission. The date, when present,
// uses the 2006-01-02 wire format.
func (s *TripService) Search(ctx context.Context, req models.TripSearchRequest) ([]models.Trip, error) {
	var departureDate *time.Time
	if req.DepartureDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DepartureDate)
		if err != nil {
			return nil, fmt.Errorf("invalid departure date %q: %w", req.DepartureDate, err)
		}
		departureDate = &parsed
	}
	return s.DB.SearchTrips(ctx, req.Origin, req.Destination, departureDate)
}

func (s *TripService) Featured(ctx context.Context) ([]models.Trip, error) {
	return s.DB.GetFeaturedTrips(ctx)
}
