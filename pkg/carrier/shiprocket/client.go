// Package shiprocket provides integration with the Shiprocket shipping API.
package shiprocket

import (
	"context"
	"errors"
	"time"

	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "shiprocket"

// Config holds Shiprocket configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	UseMock bool // When true, uses a mock API client
}

// Client is the Shiprocket carrier client.
// It implements the carrier.Client interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Shiprocket client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Shiprocket client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// Login exchanges credentials for a bearer token. A 200 response without
// a token is not an error; the empty token tells the caller no credential
// was issued.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.Login")
	defer end()

	resp, err := c.apiClient.Login(ctx, &LoginRequest{Email: email, Password: password})
	if err != nil {
		c.logger.Error("Shiprocket login failed", zap.Error(err))
		return "", c.wrapError("LOGIN_FAILED", err)
	}

	if resp.Token == "" {
		c.logger.Warn("Shiprocket login answered without a token")
	}
	return resp.Token, nil
}

// PickupLocations lists the pickup locations registered with Shiprocket.
func (c *Client) PickupLocations(ctx context.Context, token string) ([]carrier.PickupLocation, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.PickupLocations")
	defer end()

	resp, err := c.apiClient.PickupLocations(ctx, token)
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err))
		return nil, c.wrapError("LOCATIONS_FAILED", err)
	}

	locations := make([]carrier.PickupLocation, len(resp.Data))
	for i, l := range resp.Data {
		locations[i] = locationToCarrier(l)
	}
	return locations, nil
}

// CreateOrder submits a new adhoc shipment order to Shiprocket.
func (c *Client) CreateOrder(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.CreateOrder")
	defer end()

	c.logger.Info("Creating Shiprocket order",
		zap.String("order_id", payload.OrderID),
		zap.Int("item_count", len(payload.Items)),
	)

	resp, err := c.apiClient.CreateOrder(ctx, token, orderPayloadToAPI(payload))
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err))
		return nil, c.wrapError("CREATE_FAILED", err)
	}

	return &carrier.CreateOrderResult{
		OrderID:    resp.OrderID,
		ShipmentID: resp.ShipmentID,
		Status:     resp.Status,
		AWBCode:    resp.AWBCode,
		Raw:        resp.Raw,
	}, nil
}

// CancelOrders cancels the shipments with the given carrier order ids.
func (c *Client) CancelOrders(ctx context.Context, token string, orderIDs []int64) (*carrier.CancelResult, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.CancelOrders")
	defer end()

	c.logger.Info("Cancelling Shiprocket orders", zap.Int64s("order_ids", orderIDs))

	resp, err := c.apiClient.CancelOrders(ctx, token, &CancelRequest{IDs: orderIDs})
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err))
		return nil, c.wrapError("CANCEL_FAILED", err)
	}

	return &carrier.CancelResult{
		Message: resp.Message,
		Raw:     resp.Raw,
	}, nil
}

// GetOrder fetches Shiprocket's full record of an order.
func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (*carrier.OrderDetail, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.GetOrder")
	defer end()

	resp, err := c.apiClient.GetOrder(ctx, token, orderID)
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err), zap.Int64("order_id", orderID))
		return nil, c.wrapError("SHOW_FAILED", err)
	}

	return orderDetailToCarrier(resp.Data), nil
}

// CreateReturn submits a return shipment order to Shiprocket.
func (c *Client) CreateReturn(ctx context.Context, token string, payload *carrier.ReturnPayload) (*carrier.ReturnResult, error) {
	ctx, end := c.startSpan(ctx, "shiprocket.CreateReturn")
	defer end()

	c.logger.Info("Creating Shiprocket return", zap.Int64("order_id", payload.OrderID))

	resp, err := c.apiClient.CreateReturn(ctx, token, returnPayloadToAPI(payload))
	if err != nil {
		c.logger.Error("Shiprocket API error", zap.Error(err))
		return nil, c.wrapError("RETURN_FAILED", err)
	}

	return &carrier.ReturnResult{
		OrderID:    resp.OrderID,
		ShipmentID: resp.ShipmentID,
		Status:     resp.Status,
		Raw:        resp.Raw,
	}, nil
}

// startSpan begins a trace span when a tracer is configured.
func (c *Client) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if c.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := c.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}

// wrapError converts API-level errors into carrier.Error so no raw
// transport error escapes past this client.
func (c *Client) wrapError(code string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return carrier.NewError(carrierName, code, apiErr.Message).
			WithStatusCode(apiErr.StatusCode).
			WithCause(err)
	}
	return carrier.NewError(carrierName, code, "carrier request failed").WithCause(err)
}

// ============================================================================
// Conversion helpers: carrier models <-> API models
// ============================================================================

func locationToCarrier(l Location) carrier.PickupLocation {
	return carrier.PickupLocation{
		ID:      l.ID,
		Code:    l.PickupLocation,
		Name:    l.Name,
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		Country: l.Country,
		Pincode: l.PinCode,
		Phone:   l.Phone,
		Email:   l.Email,
		Primary: l.IsPrimaryLocation == 1,
	}
}

func itemsToAPI(items []carrier.OrderItem) []OrderItemRequest {
	result := make([]OrderItemRequest, len(items))
	for i, it := range items {
		result[i] = OrderItemRequest{
			Name:         it.Name,
			SKU:          it.SKU,
			Units:        it.Units,
			SellingPrice: it.SellingPrice,
		}
	}
	return result
}

func orderPayloadToAPI(p *carrier.OrderPayload) *OrderRequest {
	return &OrderRequest{
		OrderID:             p.OrderID,
		OrderDate:           p.OrderDate,
		PickupLocation:      p.PickupLocation,
		BillingCustomerName: p.BillingCustomerName,
		BillingLastName:     p.BillingLastName,
		BillingAddress:      p.BillingAddress,
		BillingCity:         p.BillingCity,
		BillingPincode:      p.BillingPincode,
		BillingState:        p.BillingState,
		BillingCountry:      p.BillingCountry,
		BillingEmail:        p.BillingEmail,
		BillingPhone:        p.BillingPhone,
		ShippingIsBilling:   p.ShippingIsBilling,
		OrderItems:          itemsToAPI(p.Items),
		PaymentMethod:       p.PaymentMethod,
		SubTotal:            p.SubTotal,
		Length:              p.Length,
		Breadth:             p.Breadth,
		Height:              p.Height,
		Weight:              p.Weight,
	}
}

func returnPayloadToAPI(p *carrier.ReturnPayload) *ReturnRequest {
	return &ReturnRequest{
		OrderID:              p.OrderID,
		OrderDate:            p.OrderDate,
		PickupCustomerName:   p.Pickup.Name,
		PickupAddress:        p.Pickup.Address,
		PickupCity:           p.Pickup.City,
		PickupState:          p.Pickup.State,
		PickupCountry:        p.Pickup.Country,
		PickupPincode:        p.Pickup.Pincode,
		PickupEmail:          p.Pickup.Email,
		PickupPhone:          p.Pickup.Phone,
		ShippingCustomerName: p.Shipping.Name,
		ShippingAddress:      p.Shipping.Address,
		ShippingCity:         p.Shipping.City,
		ShippingState:        p.Shipping.State,
		ShippingCountry:      p.Shipping.Country,
		ShippingPincode:      p.Shipping.Pincode,
		ShippingEmail:        p.Shipping.Email,
		ShippingPhone:        p.Shipping.Phone,
		OrderItems:           itemsToAPI(p.Items),
		PaymentMethod:        p.PaymentMethod,
		SubTotal:             p.SubTotal,
		Length:               p.Length,
		Breadth:              p.Breadth,
		Height:               p.Height,
		Weight:               p.Weight,
	}
}

func orderDetailToCarrier(d OrderDetailData) *carrier.OrderDetail {
	return &carrier.OrderDetail{
		ID:              d.ID,
		CustomerName:    d.CustomerName,
		CustomerAddress: d.CustomerAddress,
		CustomerCity:    d.CustomerCity,
		CustomerState:   d.CustomerState,
		CustomerCountry: d.CustomerCountry,
		CustomerPincode: d.CustomerPincode,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		PickupLocation:  d.PickupLocation,
		Shipment: carrier.ShipmentDimensions{
			Length:  d.Shipments.Length,
			Breadth: d.Shipments.Breadth,
			Height:  d.Shipments.Height,
			Weight:  d.Shipments.Weight,
		},
	}
}

var _ carrier.Client = (*Client)(nil)
