// Package carrier provides an abstraction layer for shipping carriers.
package carrier

import (
	"context"
)

// Client defines the interface that all shipping carriers must implement.
// Every authenticated operation takes the bearer token explicitly; token
// lifecycle is owned by the caller, not by the client.
type Client interface {
	// Name returns the carrier identifier (e.g., "shiprocket").
	Name() string

	// Login exchanges credentials for a bearer token. An empty token with a
	// nil error means the carrier answered without issuing a token.
	Login(ctx context.Context, email, password string) (string, error)

	// PickupLocations lists the pickup locations registered with the carrier.
	PickupLocations(ctx context.Context, token string) ([]PickupLocation, error)

	// CreateOrder submits a new shipment order.
	CreateOrder(ctx context.Context, token string, payload *OrderPayload) (*CreateOrderResult, error)

	// CancelOrders cancels the shipments with the given carrier order ids.
	CancelOrders(ctx context.Context, token string, orderIDs []int64) (*CancelResult, error)

	// GetOrder fetches the carrier's full record of an order.
	GetOrder(ctx context.Context, token string, orderID int64) (*OrderDetail, error)

	// CreateReturn submits a return shipment order.
	CreateReturn(ctx context.Context, token string, payload *ReturnPayload) (*ReturnResult, error)
}
