// Package postgres implements the gateway's persistence collaborators on
// top of a PostgreSQL database.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arvan/shipgate/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements store.OrderStore and store.TokenStore.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and verifies the connection.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool, for tests and shared wiring.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// OrderByID loads an order, optionally including its line items.
func (s *Store) OrderByID(ctx context.Context, id string, includeItems bool) (*store.Order, error) {
	const q = `
		SELECT id, created_at, paid, total,
		       COALESCE(carrier_order_id, 0),
		       COALESCE(return_reason, ''),
		       COALESCE(return_additional_info, ''),
		       fulfillment
		FROM orders
		WHERE id = $1`

	var o store.Order
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.CreatedAt, &o.Paid, &o.Total,
		&o.CarrierOrderID, &o.ReturnReason, &o.ReturnAdditionalInfo,
		&o.Fulfillment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("loading order %s: %w", id, err)
	}

	if includeItems {
		items, err := s.orderItems(ctx, id)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return &o, nil
}

func (s *Store) orderItems(ctx context.Context, orderID string) ([]store.OrderLineItem, error) {
	const q = `
		SELECT product_name, color, size, quantity, price_at_order
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := s.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	var items []store.OrderLineItem
	for rows.Next() {
		var it store.OrderLineItem
		if err := rows.Scan(&it.ProductName, &it.Color, &it.Size, &it.Quantity, &it.PriceAtOrder); err != nil {
			return nil, fmt.Errorf("scanning item of order %s: %w", orderID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetCarrierOrderID records the carrier-assigned order id.
func (s *Store) SetCarrierOrderID(ctx context.Context, id string, carrierOrderID int64) error {
	const q = `UPDATE orders SET carrier_order_id = $2 WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id, carrierOrderID)
	if err != nil {
		return fmt.Errorf("recording carrier order id for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// SetReturnInfo records return metadata and the new fulfillment state.
// A single UPDATE keeps the write atomic with respect to the record.
func (s *Store) SetReturnInfo(ctx context.Context, id string, reason, additionalInfo string, state store.Fulfillment) error {
	const q = `
		UPDATE orders
		SET return_reason = $2, return_additional_info = $3, fulfillment = $4
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id, reason, additionalInfo, state)
	if err != nil {
		return fmt.Errorf("recording return info for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// CachedToken returns the stored carrier token, or (nil, nil) when the
// cache is empty.
func (s *Store) CachedToken(ctx context.Context) (*store.AuthToken, error) {
	const q = `SELECT token, issued_at FROM carrier_tokens ORDER BY issued_at DESC LIMIT 1`

	var t store.AuthToken
	err := s.pool.QueryRow(ctx, q).Scan(&t.Value, &t.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cached token: %w", err)
	}
	return &t, nil
}

// ReplaceToken replaces the stored token wholesale inside one
// transaction: delete any existing row, then insert the new one.
func (s *Store) ReplaceToken(ctx context.Context, value string, issuedAt time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning token replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM carrier_tokens`); err != nil {
		return fmt.Errorf("clearing token cache: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO carrier_tokens (token, issued_at) VALUES ($1, $2)`,
		value, issuedAt,
	); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return tx.Commit(ctx)
}

var (
	_ store.OrderStore = (*Store)(nil)
	_ store.TokenStore = (*Store)(nil)
)
