package models

import (
	"time"

	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID          string      `bun:"order_id,pk" json:"order_id"`
	ConfirmationCode string      `bun:"confirmation_code" json:"confirmation_code"`
	UserID           string      `bun:"user_id,notnull" json:"user_id"`
	TripID           string      `bun:"trip_id,notnull" json:"trip_id"`
	SeatNumbers      []string    `bun:"seat_numbers,array" json:"seat_numbers"`
	Passengers       []Passenger `bun:"passengers,type:jsonb" json:"passengers"`
	PricePerSeat     float64     `bun:"price_per_seat,notnull" json:"price_per_seat"`
	ServiceFee       float64     `bun:"service_fee" json:"service_fee"`
	Total            float64     `bun:"total,notnull" json:"total"`
	Status           OrderStatus `bun:"status,notnull" json:"status"`
	TransactionID    string      `bun:"transaction_id,nullzero" json:"transaction_id,omitempty"`
	CreatedAt        time.Time   `bun:"created_at,notnull" json:"created_at"`
}

type OrderWithTickets struct {
	Order   Order    `json:"order"`
	Tickets []Ticket `json:"tickets"`
}
