package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
)

// APIClient defines the interface for Shiprocket API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// Login authenticates against the Shiprocket API
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)

	// PickupLocations lists the company's registered pickup locations
	PickupLocations(ctx context.Context, token string) (*PickupLocationsResponse, error)

	// CreateOrder creates a new adhoc shipment order
	CreateOrder(ctx context.Context, token string, req *OrderRequest) (*CreateOrderResponse, error)

	// CancelOrders cancels existing orders by id
	CancelOrders(ctx context.Context, token string, req *CancelRequest) (*CancelResponse, error)

	// GetOrder fetches the full order detail
	GetOrder(ctx context.Context, token string, orderID int64) (*OrderDetailResponse, error)

	// CreateReturn creates a return order
	CreateReturn(ctx context.Context, token string, req *ReturnRequest) (*ReturnResponse, error)
}

// ============================================================================
// API Request/Response Types (match Shiprocket External API v1 structure)
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the response of POST /auth/login. Token may be empty
// when the carrier answers 200 without issuing one.
type LoginResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Location is a pickup location entry from GET /settings/company/locations.
type Location struct {
	ID                int64  `json:"id"`
	PickupLocation    string `json:"pickup_location"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	Address2          string `json:"address_2"`
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	PinCode           string `json:"pin_code"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	IsPrimaryLocation int    `json:"is_primary_location"`
}

// PickupLocationsResponse is the response of GET /settings/company/locations.
type PickupLocationsResponse struct {
	Data []Location `json:"data"`
}

// OrderItemRequest is one line of an order or return payload.
type OrderItemRequest struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// OrderRequest is the body of POST /orders/create/adhoc.
type OrderRequest struct {
	OrderID             string             `json:"order_id"`
	OrderDate           string             `json:"order_date"`
	PickupLocation      string             `json:"pickup_location"`
	BillingCustomerName string             `json:"billing_customer_name"`
	BillingLastName     string             `json:"billing_last_name,omitempty"`
	BillingAddress      string             `json:"billing_address"`
	BillingCity         string             `json:"billing_city"`
	BillingPincode      string             `json:"billing_pincode"`
	BillingState        string             `json:"billing_state"`
	BillingCountry      string             `json:"billing_country"`
	BillingEmail        string             `json:"billing_email,omitempty"`
	BillingPhone        string             `json:"billing_phone"`
	ShippingIsBilling   bool               `json:"shipping_is_billing"`
	OrderItems          []OrderItemRequest `json:"order_items"`
	PaymentMethod       string             `json:"payment_method"`
	SubTotal            float64            `json:"sub_total"`
	Length              float64            `json:"length"`
	Breadth             float64            `json:"breadth"`
	Height              float64            `json:"height"`
	Weight              float64            `json:"weight"`
}

// CreateOrderResponse is the response of POST /orders/create/adhoc.
// Raw holds the undecoded body for callers that relay it.
type CreateOrderResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`
	AWBCode    string `json:"awb_code"`

	Raw json.RawMessage `json:"-"`
}

// CancelRequest is the body of POST /orders/cancel.
type CancelRequest struct {
	IDs []int64 `json:"ids"`
}

// CancelResponse is the response of POST /orders/cancel.
type CancelResponse struct {
	Message string `json:"message"`

	Raw json.RawMessage `json:"-"`
}

// ShipmentDetail holds the package dimensions of an existing order,
// from the "shipments" object of GET /orders/show/{id}.
type ShipmentDetail struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
}

// OrderDetailData is the "data" object of GET /orders/show/{id}.
type OrderDetailData struct {
	ID              int64          `json:"id"`
	CustomerName    string         `json:"customer_name"`
	CustomerAddress string         `json:"customer_address"`
	CustomerCity    string         `json:"customer_city"`
	CustomerState   string         `json:"customer_state"`
	CustomerCountry string         `json:"customer_country"`
	CustomerPincode string         `json:"customer_pincode"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	PickupLocation  string         `json:"pickup_location"`
	Shipments       ShipmentDetail `json:"shipments"`
}

// OrderDetailResponse is the response of GET /orders/show/{id}.
type OrderDetailResponse struct {
	Data OrderDetailData `json:"data"`

	Raw json.RawMessage `json:"-"`
}

// ReturnRequest is the body of POST /orders/create/return. Pickup fields
// describe where the item is collected, shipping fields where it goes.
type ReturnRequest struct {
	OrderID              int64              `json:"order_id"`
	OrderDate            string             `json:"order_date"`
	PickupCustomerName   string             `json:"pickup_customer_name"`
	PickupAddress        string             `json:"pickup_address"`
	PickupCity           string             `json:"pickup_city"`
	PickupState          string             `json:"pickup_state"`
	PickupCountry        string             `json:"pickup_country"`
	PickupPincode        string             `json:"pickup_pincode"`
	PickupEmail          string             `json:"pickup_email,omitempty"`
	PickupPhone          string             `json:"pickup_phone"`
	ShippingCustomerName string             `json:"shipping_customer_name"`
	ShippingAddress      string             `json:"shipping_address"`
	ShippingCity         string             `json:"shipping_city"`
	ShippingState        string             `json:"shipping_state"`
	ShippingCountry      string             `json:"shipping_country"`
	ShippingPincode      string             `json:"shipping_pincode"`
	ShippingEmail        string             `json:"shipping_email,omitempty"`
	ShippingPhone        string             `json:"shipping_phone"`
	OrderItems           []OrderItemRequest `json:"order_items"`
	PaymentMethod        string             `json:"payment_method"`
	SubTotal             float64            `json:"sub_total"`
	Length               float64            `json:"length"`
	Breadth              float64            `json:"breadth"`
	Height               float64            `json:"height"`
	Weight               float64            `json:"weight"`
}

// ReturnResponse is the response of POST /orders/create/return.
type ReturnResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`

	Raw json.RawMessage `json:"-"`
}

// APIError represents an error from the Shiprocket API.
type APIError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP_%d: %s", e.StatusCode, e.Message)
}
