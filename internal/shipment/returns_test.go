package shipment_test

import (
	"testing"
	"time"

	"github.com/arvan/shipgate/internal/shipment"
	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *store.Order {
	return &store.Order{
		ID:             "order-42",
		CreatedAt:      time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC),
		Paid:           false,
		Total:          998,
		CarrierOrderID: 555,
		Fulfillment:    store.FulfillmentShipped,
		Items: []store.OrderLineItem{
			{ProductName: "Shirt", Color: "Blue", Size: "M", Quantity: 1, PriceAtOrder: 499},
			{ProductName: "Shirt", Color: "Blue", Size: "L", Quantity: 1, PriceAtOrder: 499},
		},
	}
}

func testDetail() *carrier.OrderDetail {
	return &carrier.OrderDetail{
		ID:              555,
		CustomerName:    "Asha Rao",
		CustomerAddress: "44 Lake View Road",
		CustomerCity:    "Bengaluru",
		CustomerState:   "Karnataka",
		CustomerCountry: "India",
		CustomerPincode: "560001",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9888877777",
		Shipment: carrier.ShipmentDimensions{
			Length:  20,
			Breadth: 15,
			Height:  10,
			Weight:  0.8,
		},
	}
}

func testOrigin() shipment.ReturnOrigin {
	return shipment.ReturnOrigin{
		Name:    "Arvan Returns",
		Address: "7 Mill Compound",
		City:    "Mumbai",
		State:   "Maharashtra",
		Country: "India",
		Pincode: "400001",
		Phone:   "9111122222",
		Email:   "returns@arvan.example",
	}
}

func TestBuildReturnPayload(t *testing.T) {
	payload := shipment.BuildReturnPayload(testOrder(), testDetail(), testOrigin())

	assert.Equal(t, int64(555), payload.OrderID)
	assert.Equal(t, "2026-08-01", payload.OrderDate)

	// The customer is the pickup side of a return.
	assert.Equal(t, "Asha Rao", payload.Pickup.Name)
	assert.Equal(t, "44 Lake View Road", payload.Pickup.Address)
	assert.Equal(t, "Bengaluru", payload.Pickup.City)
	assert.Equal(t, "560001", payload.Pickup.Pincode)

	// The configured facility is the shipping side.
	assert.Equal(t, "Arvan Returns", payload.Shipping.Name)
	assert.Equal(t, "Mumbai", payload.Shipping.City)
	assert.Equal(t, "400001", payload.Shipping.Pincode)

	assert.Equal(t, 998.0, payload.SubTotal)
	assert.Equal(t, 20.0, payload.Length)
	assert.Equal(t, 15.0, payload.Breadth)
	assert.Equal(t, 10.0, payload.Height)
	assert.Equal(t, 0.8, payload.Weight)
}

func TestBuildReturnPayload_Items(t *testing.T) {
	payload := shipment.BuildReturnPayload(testOrder(), testDetail(), testOrigin())

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Shirt", payload.Items[0].Name)
	assert.Equal(t, "ARVBlueM", payload.Items[0].SKU)
	assert.Equal(t, 1, payload.Items[0].Units)
	assert.Equal(t, 499.0, payload.Items[0].SellingPrice)
	assert.Equal(t, "ARVBlueL", payload.Items[1].SKU)
}

func TestBuildReturnPayload_PaymentMethod(t *testing.T) {
	order := testOrder()

	order.Paid = false
	assert.Equal(t, "Prepaid", shipment.BuildReturnPayload(order, testDetail(), testOrigin()).PaymentMethod)

	order.Paid = true
	assert.Equal(t, "cod", shipment.BuildReturnPayload(order, testDetail(), testOrigin()).PaymentMethod)
}
