package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TripType string

const (
	TripLeito     TripType = "LEITO"
	TripSemiLeito TripType = "SEMILEITO"
	TripExecutivo TripType = "EXECUTIVO"
)

type Trip struct {
	bun.BaseModel `bun:"table:trips"`

	TripID        string    `bun:"trip_id,pk" json:"trip_id"`
	Company       string    `bun:"company,notnull" json:"company"`
	Origin        string    `bun:"origin,notnull" json:"origin"`
	Destination   string    `bun:"destination,notnull" json:"destination"`
	DepartureTime time.Time `bun:"departure_time,notnull" json:"departure_time"`
	ArrivalTime   time.Time `bun:"arrival_time,notnull" json:"arrival_time"`
	Type          TripType  `bun:"type,notnull" json:"type"`
	OriginalPrice float64   `bun:"original_price" json:"original_price"`
	CurrentPrice  float64   `bun:"current_price,notnull" json:"current_price"`
	Amenities     []string  `bun:"amenities,array" json:"amenities"`
	Featured      bool      `bun:"featured" json:"featured"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Duration is derived from the schedule, not stored.
func (t *Trip) Duration() time.Duration {
	return t.ArrivalTime.Sub(t.DepartureTime)
}

type TripSearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date,omitempty"`
}
