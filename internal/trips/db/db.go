package db

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetTripByID(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	err := d.Bun.NewSelect().
		Model(&trip).
		Where("trip_id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// SearchTrips filters by origin/destination substring and, when given,
// by departure day. Results come back soonest departure first.
func (d *DB) SearchTrips(ctx context.Context, origin, destination string, departureDate *time.Time) ([]models.Trip, error) {
	q := d.Bun.NewSelect().Model((*models.Trip)(nil))

	if origin != "" {
		q = q.Where("origin LIKE ?", "%"+origin+"%")
	}
	if destination != "" {
		q = q.Where("destination LIKE ?", "%"+destination+"%")
	}
	if departureDate != nil {
		dayStart := time.Date(departureDate.Year(), departureDate.Month(), departureDate.Day(), 0, 0, 0, 0, departureDate.Location())
		q = q.Where("departure_time >= ?", dayStart).
			Where("departure_time < ?", dayStart.Add(24*time.Hour))
	}

	var trips []models.Trip
	if err := q.Order("departure_time ASC").Scan(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (d *DB) GetFeaturedTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	err := d.Bun.NewSelect().
		Model(&trips).
		Where("featured = ?", true).
		Order("departure_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (d *DB) CreateTrip(ctx context.Context, trip models.Trip) error {
	_, err := d.Bun.NewInsert().Model(&trip).Exec(ctx)
	return err
}

// Migrate creates the trips table if it is missing.
func Migrate(db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Trip)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		return fmt.Errorf("create trips table: %w", err)
	}
	return nil
}
