package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ticket is the boarding pass issued for one confirmed seat.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	TicketID        string    `bun:"ticket_id,pk" json:"ticket_id"`
	OrderID         string    `bun:"order_id,notnull" json:"order_id"`
	TripID          string    `bun:"trip_id,notnull" json:"trip_id"`
	SeatNumber      string    `bun:"seat_number,notnull" json:"seat_number"`
	PassengerName   string    `bun:"passenger_name,notnull" json:"passenger_name"`
	DocumentNumber  string    `bun:"document_number" json:"document_number"`
	QRCode          []byte    `bun:"qr_code" json:"qr_code,omitempty"`
	PriceAtPurchase float64   `bun:"price_at_purchase" json:"price_at_purchase"`
	IssuedAt        time.Time `bun:"issued_at,notnull" json:"issued_at"`
}
