package storage

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/models"

	"github.com/uptrace/bun"
)

type Store interface {
	CreatePayment(payment models.Payment) error
	GetPaymentByID(paymentID string) (*models.Payment, error)
	GetPaymentByOrderID(orderID string) (*models.Payment, error)
	UpdatePaymentStatus(paymentID string, status models.PaymentStatus, transactionID string) error
}

// BunStore persists payment records through bun.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *bun.DB) (*BunStore, error) {
	if _, err := db.NewCreateTable().Model((*models.Payment)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		return nil, fmt.Errorf("create payments table: %w", err)
	}
	return &BunStore{db: db}, nil
}

func (s *BunStore) CreatePayment(payment models.Payment) error {
	if payment.CreatedDate.IsZero() {
		payment.CreatedDate = time.Now()
	}
	_, err := s.db.NewInsert().Model(&payment).Exec(context.Background())
	return err
}

func (s *BunStore) GetPaymentByID(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.NewSelect().
		Model(&payment).
		Where("payment_id = ?", paymentID).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *BunStore) GetPaymentByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.NewSelect().
		Model(&payment).
		Where("order_id = ?", orderID).
		Order("created_date DESC").
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *BunStore) UpdatePaymentStatus(paymentID string, status models.PaymentStatus, transactionID string) error {
	_, err := s.db.NewUpdate().
		Model((*models.Payment)(nil)).
		Set("status = ?", status).
		Set("transaction_id = ?", transactionID).
		Set("updated_date = ?", time.Now()).
		Where("payment_id = ?", paymentID).
		Exec(context.Background())
	return err
}
