package db

import (
	"context"
	"fmt"

	"bus-ticketing/internal/models"

	"github.com/uptrace/bun"
)

// Migrate creates the order and ticket tables if they are missing.
func Migrate(db *bun.DB) error {
	ctx := context.Background()

	if _, err := db.NewCreateTable().Model((*models.Order)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*models.Ticket)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create tickets table: %w", err)
	}
	return nil
}
