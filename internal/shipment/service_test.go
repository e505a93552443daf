package shipment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arvan/shipgate/internal/shipment"
	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/internal/validation"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/arvan/shipgate/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(client *mock.Client, orders *fakeOrderStore) *shipment.Service {
	tokens := &fakeTokenStore{token: &store.AuthToken{
		Value:    "cached-token",
		IssuedAt: time.Now(),
	}}
	creds := shipment.Credentials{Email: "ops@example.com", Password: "secret"}
	source := shipment.NewTokenSource(tokens, client, creds, shipment.DefaultTokenTTL, testLogger(), testMetrics)
	return shipment.New(client, source, orders, validation.New(), testOrigin(), testLogger(), testMetrics)
}

func validPayload() *carrier.OrderPayload {
	return &carrier.OrderPayload{
		OrderID:             "order-42",
		OrderDate:           "2026-08-01",
		BillingCustomerName: "Asha",
		BillingLastName:     "Rao",
		BillingAddress:      "44 Lake View Road - 560001",
		BillingCity:         "Bengaluru",
		BillingPincode:      "560001",
		BillingState:        "Karnataka",
		BillingCountry:      "India",
		BillingEmail:        "asha@example.com",
		BillingPhone:        "9888877777",
		ShippingIsBilling:   true,
		Items: []carrier.OrderItem{
			{Name: "Shirt", SKU: "ARVBlueM", Units: 1, SellingPrice: 499},
			{Name: "Shirt", SKU: "ARVBlueM", Units: 1, SellingPrice: 499},
		},
		PaymentMethod: "Prepaid",
		SubTotal:      998,
		Length:        20,
		Breadth:       15,
		Height:        10,
		Weight:        0.8,
	}
}

func TestService_Create_Success(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42"})

	var sent *carrier.OrderPayload
	client := mock.New("shiprocket")
	client.OnCreateOrder = func(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
		sent = payload
		return &carrier.CreateOrderResult{OrderID: 555, ShipmentID: 666, Status: "NEW"}, nil
	}

	svc := newService(client, orders)
	result, err := svc.Create(context.Background(), validPayload())

	require.NoError(t, err)
	assert.Equal(t, int64(555), result.OrderID)

	// Normalization happened before the carrier saw the payload.
	require.NotNil(t, sent)
	assert.Equal(t, "44 Lake View Road", sent.BillingAddress)
	assert.Equal(t, "Primary", sent.PickupLocation)
	assert.Equal(t, "ARVBlueM", sent.Items[0].SKU)
	assert.Equal(t, "ARVBlueM_1", sent.Items[1].SKU)

	// The carrier order id was persisted.
	assert.Equal(t, int64(555), orders.orders["order-42"].CarrierOrderID)
}

func TestService_Create_CarrierErrorSurfaced(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42"})

	client := mock.New("shiprocket")
	client.OnCreateOrder = func(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
		return nil, carrier.NewError("shiprocket", "CREATE_FAILED", "Wrong Pickup location entered.").WithStatusCode(422)
	}

	svc := newService(client, orders)
	_, err := svc.Create(context.Background(), validPayload())

	require.Error(t, err)
	var cerr *carrier.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "CREATE_FAILED", cerr.Code)
	assert.Zero(t, orders.carrierIDCalls, "failed creation must not persist a carrier order id")
}

func TestService_Create_PickupLookupFallsBack(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42"})

	var sent *carrier.OrderPayload
	client := mock.New("shiprocket")
	client.OnPickupLocations = func(ctx context.Context, token string) ([]carrier.PickupLocation, error) {
		return nil, carrier.NewError("shiprocket", "LOCATIONS_FAILED", "upstream timeout")
	}
	client.OnCreateOrder = func(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
		sent = payload
		return &carrier.CreateOrderResult{OrderID: 555}, nil
	}

	svc := newService(client, orders)
	_, err := svc.Create(context.Background(), validPayload())

	require.NoError(t, err, "pickup lookup failure must not block the order")
	assert.Equal(t, "Home", sent.PickupLocation)
}

func TestService_Create_InvalidPayload(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42"})

	created := 0
	client := mock.New("shiprocket")
	client.OnCreateOrder = func(ctx context.Context, token string, payload *carrier.OrderPayload) (*carrier.CreateOrderResult, error) {
		created++
		return &carrier.CreateOrderResult{}, nil
	}

	payload := validPayload()
	payload.BillingPhone = ""
	payload.Weight = 0

	svc := newService(client, orders)
	_, err := svc.Create(context.Background(), payload)

	require.Error(t, err)
	var invalid *shipment.InvalidPayloadError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Reasons, 2)
	assert.Zero(t, created, "invalid payload must not reach the carrier")
}

func TestService_Cancel_Success(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42", CarrierOrderID: 555})

	var gotIDs []int64
	client := mock.New("shiprocket")
	client.OnCancelOrders = func(ctx context.Context, token string, orderIDs []int64) (*carrier.CancelResult, error) {
		gotIDs = orderIDs
		return &carrier.CancelResult{Message: "1 order(s) cancelled"}, nil
	}

	svc := newService(client, orders)
	result, err := svc.Cancel(context.Background(), "order-42")

	require.NoError(t, err)
	assert.Equal(t, []int64{555}, gotIDs)
	assert.Equal(t, "1 order(s) cancelled", result.Message)
}

func TestService_Cancel_OrderNotFound(t *testing.T) {
	svc := newService(mock.New("shiprocket"), newFakeOrderStore())

	_, err := svc.Cancel(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrOrderNotFound)
}

func TestService_Cancel_NotShipped(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42"})

	cancels := 0
	client := mock.New("shiprocket")
	client.OnCancelOrders = func(ctx context.Context, token string, orderIDs []int64) (*carrier.CancelResult, error) {
		cancels++
		return &carrier.CancelResult{}, nil
	}

	svc := newService(client, orders)
	_, err := svc.Cancel(context.Background(), "order-42")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrNotShipped)
	assert.Zero(t, cancels, "unshipped order must not reach the carrier")
}

func TestService_Return_Success(t *testing.T) {
	orders := newFakeOrderStore(testOrder())

	var sent *carrier.ReturnPayload
	client := mock.New("shiprocket")
	client.OnCreateReturn = func(ctx context.Context, token string, payload *carrier.ReturnPayload) (*carrier.ReturnResult, error) {
		sent = payload
		return &carrier.ReturnResult{OrderID: 555, Status: "RETURN PENDING"}, nil
	}

	svc := newService(client, orders)
	result, err := svc.Return(context.Background(), "order-42", "damaged", "sleeve torn")

	require.NoError(t, err)
	assert.Equal(t, "RETURN PENDING", result.Status)

	// The payload merges carrier detail with the local order.
	require.NotNil(t, sent)
	assert.Equal(t, int64(555), sent.OrderID)
	assert.Equal(t, "Asha Rao", sent.Pickup.Name)
	assert.Equal(t, "Arvan Returns", sent.Shipping.Name)
	assert.Equal(t, "ARVBlueM", sent.Items[0].SKU)

	// Return metadata was persisted with the new fulfillment state.
	stored := orders.orders["order-42"]
	assert.Equal(t, "damaged", stored.ReturnReason)
	assert.Equal(t, "sleeve torn", stored.ReturnAdditionalInfo)
	assert.Equal(t, store.FulfillmentReturning, stored.Fulfillment)
}

func TestService_Return_NotShipped(t *testing.T) {
	order := testOrder()
	order.CarrierOrderID = 0
	orders := newFakeOrderStore(order)

	svc := newService(mock.New("shiprocket"), orders)
	_, err := svc.Return(context.Background(), "order-42", "damaged", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrNotShipped)
}

func TestService_Return_CarrierFailureLeavesOrderUntouched(t *testing.T) {
	orders := newFakeOrderStore(testOrder())

	client := mock.New("shiprocket")
	client.OnCreateReturn = func(ctx context.Context, token string, payload *carrier.ReturnPayload) (*carrier.ReturnResult, error) {
		return nil, carrier.NewError("shiprocket", "RETURN_FAILED", "upstream error")
	}

	svc := newService(client, orders)
	_, err := svc.Return(context.Background(), "order-42", "damaged", "")

	require.Error(t, err)
	assert.Zero(t, orders.returnInfoCalls, "failed return must not persist return metadata")
	assert.Equal(t, store.FulfillmentShipped, orders.orders["order-42"].Fulfillment)
}

func TestService_Return_OrderNotFound(t *testing.T) {
	svc := newService(mock.New("shiprocket"), newFakeOrderStore())

	_, err := svc.Return(context.Background(), "missing", "damaged", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrOrderNotFound)
}

func TestService_PickupLocations_Passthrough(t *testing.T) {
	svc := newService(mock.New("shiprocket"), newFakeOrderStore())

	locations, err := svc.PickupLocations(context.Background())

	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Primary", locations[0].Code)
}

func TestService_UnauthorizedWhenLoginFails(t *testing.T) {
	orders := newFakeOrderStore(&store.Order{ID: "order-42", CarrierOrderID: 555})

	client := mock.New("shiprocket")
	client.OnLogin = func(ctx context.Context, email, password string) (string, error) {
		return "", errors.New("invalid credentials")
	}

	tokens := &fakeTokenStore{}
	creds := shipment.Credentials{Email: "ops@example.com", Password: "wrong"}
	source := shipment.NewTokenSource(tokens, client, creds, shipment.DefaultTokenTTL, testLogger(), testMetrics)
	svc := shipment.New(client, source, orders, validation.New(), testOrigin(), testLogger(), testMetrics)

	_, err := svc.Cancel(context.Background(), "order-42")

	require.Error(t, err)
	assert.ErrorIs(t, err, shipment.ErrUnauthorized)
}
