// Package store defines the persistence collaborators of the gateway:
// the order records owned by the order-management subsystem and the
// single-row carrier token cache.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Fulfillment is the shipment lifecycle status of an order.
type Fulfillment string

const (
	FulfillmentPending   Fulfillment = "PENDING"
	FulfillmentShipped   Fulfillment = "SHIPPED"
	FulfillmentCancelled Fulfillment = "CANCELLED"
	FulfillmentReturning Fulfillment = "RETURNING"
)

// OrderLineItem is a purchased line of an order.
type OrderLineItem struct {
	ProductName  string
	Color        string
	Size         string
	Quantity     int
	PriceAtOrder float64
}

// Order is the slice of the order record this gateway reads and writes.
// CarrierOrderID is zero until the order has been shipped.
type Order struct {
	ID                   string
	CreatedAt            time.Time
	Paid                 bool
	Total                float64
	CarrierOrderID       int64
	ReturnReason         string
	ReturnAdditionalInfo string
	Fulfillment          Fulfillment
	Items                []OrderLineItem
}

// OrderStore reads and mutates order records. Updates are atomic with
// respect to other fields of the same record.
type OrderStore interface {
	// OrderByID loads an order, optionally including its line items.
	OrderByID(ctx context.Context, id string, includeItems bool) (*Order, error)

	// SetCarrierOrderID records the carrier-assigned order id.
	SetCarrierOrderID(ctx context.Context, id string, carrierOrderID int64) error

	// SetReturnInfo records return metadata and the new fulfillment state.
	SetReturnInfo(ctx context.Context, id string, reason, additionalInfo string, state Fulfillment) error
}

// AuthToken is the cached carrier bearer token. The cache holds zero or
// one token at any time.
type AuthToken struct {
	Value    string
	IssuedAt time.Time
}

// TokenStore persists the carrier token cache.
type TokenStore interface {
	// CachedToken returns the stored token, or (nil, nil) when the cache
	// is empty.
	CachedToken(ctx context.Context) (*AuthToken, error)

	// ReplaceToken replaces the stored token as a single all-or-nothing
	// unit (delete any existing row, then insert the new one).
	ReplaceToken(ctx context.Context, value string, issuedAt time.Time) error
}
