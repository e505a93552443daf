package carrier

import (
	"encoding/json"
)

// PickupLocation is a pickup address registered with the carrier.
// Code is the carrier's dedicated pickup-location identifier; some
// carriers only expose a display name.
type PickupLocation struct {
	ID      int64
	Code    string
	Name    string
	Address string
	City    string
	State   string
	Country string
	Pincode string
	Phone   string
	Email   string
	Primary bool
}

// OrderItem is a single line of an outbound order payload. SKUs must be
// pairwise distinct within one payload.
type OrderItem struct {
	Name         string  `json:"name" validate:"required"`
	SKU          string  `json:"sku" validate:"required"`
	Units        int     `json:"units" validate:"required,gt=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
}

// OrderPayload is the outbound shape for creating a shipment order.
// It doubles as the gateway's inbound request body, so it carries both
// json and validation tags.
type OrderPayload struct {
	OrderID             string      `json:"order_id" validate:"required"`
	OrderDate           string      `json:"order_date" validate:"required"`
	PickupLocation      string      `json:"pickup_location"`
	BillingCustomerName string      `json:"billing_customer_name" validate:"required"`
	BillingLastName     string      `json:"billing_last_name"`
	BillingAddress      string      `json:"billing_address" validate:"required"`
	BillingCity         string      `json:"billing_city" validate:"required"`
	BillingPincode      string      `json:"billing_pincode" validate:"required"`
	BillingState        string      `json:"billing_state" validate:"required"`
	BillingCountry      string      `json:"billing_country" validate:"required"`
	BillingEmail        string      `json:"billing_email" validate:"omitempty,email"`
	BillingPhone        string      `json:"billing_phone" validate:"required"`
	ShippingIsBilling   bool        `json:"shipping_is_billing"`
	Items               []OrderItem `json:"order_items" validate:"required,min=1,dive"`
	PaymentMethod       string      `json:"payment_method" validate:"required"`
	SubTotal            float64     `json:"sub_total" validate:"gte=0"`
	Length              float64     `json:"length" validate:"gt=0"`
	Breadth             float64     `json:"breadth" validate:"gt=0"`
	Height              float64     `json:"height" validate:"gt=0"`
	Weight              float64     `json:"weight" validate:"gt=0"`
}

// ReturnParty holds the address fields of one side of a return shipment.
type ReturnParty struct {
	Name    string
	Address string
	City    string
	State   string
	Country string
	Pincode string
	Email   string
	Phone   string
}

// ReturnPayload is the outbound shape for creating a return shipment.
// Pickup is where the item is collected (the customer); Shipping is the
// facility the item is returned to.
type ReturnPayload struct {
	OrderID       int64
	OrderDate     string
	Pickup        ReturnParty
	Shipping      ReturnParty
	Items         []OrderItem
	PaymentMethod string
	SubTotal      float64
	Length        float64
	Breadth       float64
	Height        float64
	Weight        float64
}

// ShipmentDimensions are the carrier-recorded package dimensions of an
// existing order.
type ShipmentDimensions struct {
	Length  float64
	Breadth float64
	Height  float64
	Weight  float64
}

// OrderDetail is the carrier's full record of an order, as needed to
// assemble a return payload.
type OrderDetail struct {
	ID              int64
	CustomerName    string
	CustomerAddress string
	CustomerCity    string
	CustomerState   string
	CustomerCountry string
	CustomerPincode string
	CustomerEmail   string
	CustomerPhone   string
	PickupLocation  string
	Shipment        ShipmentDimensions
}

// CreateOrderResult is the carrier's response to an order creation.
// Raw preserves the carrier response verbatim for the caller.
type CreateOrderResult struct {
	OrderID    int64
	ShipmentID int64
	Status     string
	AWBCode    string
	Raw        json.RawMessage
}

// CancelResult is the carrier's response to a cancellation.
type CancelResult struct {
	Message string
	Raw     json.RawMessage
}

// ReturnResult is the carrier's response to a return creation.
type ReturnResult struct {
	OrderID    int64
	ShipmentID int64
	Status     string
	Raw        json.RawMessage
}
