package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusSuccess   PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

// CardDetails is what the checkout payment form collects. Raw card data
// only ever crosses the gateway boundary and is never persisted.
type CardDetails struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type ChargeRequest struct {
	OrderID string      `json:"order_id"`
	Amount  float64     `json:"amount"`
	Card    CardDetails `json:"card"`
}

type ChargeResponse struct {
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
}

type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	PaymentID     string        `json:"payment_id" bun:"payment_id,pk"`
	OrderID       string        `json:"order_id" bun:"order_id"`
	Status        PaymentStatus `json:"status" bun:"status"`
	Amount        float64       `json:"amount" bun:"amount"`
	TransactionID string        `json:"transaction_id,omitempty" bun:"transaction_id,nullzero"`
	CreatedDate   time.Time     `json:"created_date" bun:"created_date"`
	UpdatedDate   time.Time     `json:"updated_date,omitempty" bun:"updated_date,nullzero"`
}
