package store

import (
	"context"
	"fmt"

	"rocketshop/internal/models"
)

// ListPurchases retrieves a user's purchase history, newest first
func (s *Store) ListPurchases(ctx context.Context, username string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.SelectContext(ctx, &purchases,
		`SELECT id, username, purchased_at, product, amount, price, status, order_id, created_at
		FROM purchases WHERE username = $1 ORDER BY purchased_at DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// RecordOrderPurchases inserts the purchases of an order exactly once.
// It returns false without writing anything when the order was already recorded.
func (s *Store) RecordOrderPurchases(ctx context.Context, orderID, eventID string, purchases []models.Purchase) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO recorded_orders (order_id, event_id) VALUES ($1, $2) ON CONFLICT (order_id) DO NOTHING",
		orderID, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to mark order recorded: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		return false, nil
	}

	for _, p := range purchases {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (username, purchased_at, product, amount, price, status, order_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.Username, p.Date, p.Product, p.Amount, p.Price, p.Status, orderID)
		if err != nil {
			return false, fmt.Errorf("failed to insert purchase: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit purchases: %w", err)
	}
	return true, nil
}
