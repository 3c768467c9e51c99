package db

import (
	"context"
	"time"

	"bus-ticketing/internal/models"

	"github.com/uptrace/bun"
)

// Seed inserts the well-known demo departures when the table is empty.
func Seed(bunDB *bun.DB) error {
	ctx := context.Background()

	count, err := bunDB.NewSelect().Model((*models.Trip)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tonight := time.Now().Truncate(24 * time.Hour).Add(22*time.Hour + 30*time.Minute)

	trips := []models.Trip{
		{
			TripID:        "trip-garcia-sp-rj",
			Company:       "VIAÇÃO GARCIA",
			Origin:        "SÃO PAULO - RODOVIÁRIA TIETÊ",
			Destination:   "RIO DE JANEIRO - NOVO RIO",
			DepartureTime: tonight,
			ArrivalTime:   tonight.Add(6*time.Hour + 40*time.Minute),
			Type:          models.TripLeito,
			OriginalPrice: 262.27,
			CurrentPrice:  214.99,
			Amenities:     []string{"wifi", "ac", "coffee"},
			Featured:      true,
			CreatedAt:     time.Now(),
		},
		{
			TripID:        "trip-cometa-sp-bh",
			Company:       "VIAÇÃO COMETA",
			Origin:        "SÃO PAULO - RODOVIÁRIA TIETÊ",
			Destination:   "BELO HORIZONTE - RODOVIÁRIA",
			DepartureTime: tonight.Add(30 * time.Minute),
			ArrivalTime:   tonight.Add(8*time.Hour + 15*time.Minute),
			Type:          models.TripSemiLeito,
			OriginalPrice: 189.90,
			CurrentPrice:  159.90,
			Amenities:     []string{"wifi", "ac"},
			Featured:      true,
			CreatedAt:     time.Now(),
		},
		{
			TripID:        "trip-itapemirim-rj-bh",
			Company:       "VIAÇÃO ITAPEMIRIM",
			Origin:        "RIO DE JANEIRO - NOVO RIO",
			Destination:   "BELO HORIZONTE - RODOVIÁRIA",
			DepartureTime: tonight.Add(time.Hour),
			ArrivalTime:   tonight.Add(7*time.Hour + 30*time.Minute),
			Type:          models.TripExecutivo,
			OriginalPrice: 120.00,
			CurrentPrice:  99.90,
			Amenities:     []string{"ac"},
			CreatedAt:     time.Now(),
		},
	}

	for _, trip := range trips {
		if _, err := bunDB.NewInsert().Model(&trip).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
