// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arvan/shipgate/pkg/carrier"
)

// Client is a mock carrier for testing. Each method returns canned data
// unless the matching On hook is set.
type Client struct {
	name string

	OnLogin           func(ctx context.Context, email, password string) (string, error)
	OnPickupLocations func(ctx context.Context, token string) ([]carrier.PickupLocation, error)
	OnCreateOrder     func(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error)
	OnCancelOrders    func(ctx context.Context, token string, orderIDs []int64) (*carrier.CancelResult, error)
	OnGetOrder        func(ctx context.Context, token string, orderID int64) (*carrier.OrderDetail, error)
	OnCreateReturn    func(ctx context.Context, token string, payload *carrier.ReturnPayload) (*carrier.ReturnResult, error)
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// Login returns a mock bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if c.OnLogin != nil {
		return c.OnLogin(ctx, email, password)
	}
	return fmt.Sprintf("%s-token-%d", c.name, time.Now().UnixNano()), nil
}

// PickupLocations returns a mock location list.
func (c *Client) PickupLocations(ctx context.Context, token string) ([]carrier.PickupLocation, error) {
	if c.OnPickupLocations != nil {
		return c.OnPickupLocations(ctx, token)
	}
	return []carrier.PickupLocation{
		{
			ID:      1,
			Code:    "Primary",
			Name:    "Main Warehouse",
			Address: "12 Industrial Estate",
			City:    "Noida",
			State:   "Uttar Pradesh",
			Country: "India",
			Pincode: "201301",
			Phone:   "9999999999",
			Primary: true,
		},
	}, nil
}

// CreateOrder creates a mock shipment order.
func (c *Client) CreateOrder(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
	if c.OnCreateOrder != nil {
		return c.OnCreateOrder(ctx, token, payload)
	}
	result := &carrier.CreateOrderResult{
		OrderID:    time.Now().UnixNano() % 100000000,
		ShipmentID: time.Now().UnixNano() % 100000000,
		Status:     "NEW",
	}
	result.Raw, _ = json.Marshal(result)
	return result, nil
}

// CancelOrders cancels mock orders.
func (c *Client) CancelOrders(ctx context.Context, token string, orderIDs []int64) (*carrier.CancelResult, error) {
	if c.OnCancelOrders != nil {
		return c.OnCancelOrders(ctx, token, orderIDs)
	}
	return &carrier.CancelResult{
		Message: fmt.Sprintf("%d order(s) cancelled", len(orderIDs)),
	}, nil
}

// GetOrder returns a mock order detail.
func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (*carrier.OrderDetail, error) {
	if c.OnGetOrder != nil {
		return c.OnGetOrder(ctx, token, orderID)
	}
	return &carrier.OrderDetail{
		ID:              orderID,
		CustomerName:    "Asha Rao",
		CustomerAddress: "44 Lake View Road",
		CustomerCity:    "Bengaluru",
		CustomerState:   "Karnataka",
		CustomerCountry: "India",
		CustomerPincode: "560001",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9888877777",
		PickupLocation:  "Primary",
		Shipment: carrier.ShipmentDimensions{
			Length:  20,
			Breadth: 15,
			Height:  10,
			Weight:  0.8,
		},
	}, nil
}

// CreateReturn creates a mock return order.
func (c *Client) CreateReturn(ctx context.Context, token string, payload *carrier.ReturnPayload) (*carrier.ReturnResult, error) {
	if c.OnCreateReturn != nil {
		return c.OnCreateReturn(ctx, token, payload)
	}
	return &carrier.ReturnResult{
		OrderID:    payload.OrderID,
		ShipmentID: time.Now().UnixNano() % 100000000,
		Status:     "RETURN PENDING",
	}, nil
}

var _ carrier.Client = (*Client)(nil)
