package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnLogin           func(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	OnPickupLocations func(ctx context.Context, token string) (*PickupLocationsResponse, error)
	OnCreateOrder     func(ctx context.Context, token string, req *OrderRequest) (*CreateOrderResponse, error)
	OnCancelOrders    func(ctx context.Context, token string, req *CancelRequest) (*CancelResponse, error)
	OnGetOrder        func(ctx context.Context, token string, orderID int64) (*OrderDetailResponse, error)
	OnCreateReturn    func(ctx context.Context, token string, req *ReturnRequest) (*ReturnResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func (m *MockAPIClient) simulate() error {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return &APIError{StatusCode: 500, Message: "Simulated API error"}
	}
	return nil
}

// Login returns a mock bearer token.
func (m *MockAPIClient) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnLogin != nil {
		return m.OnLogin(ctx, req)
	}

	return &LoginResponse{
		Token: "mock-token-" + uuid.New().String()[:8],
		Email: req.Email,
	}, nil
}

// PickupLocations returns a mock location list.
func (m *MockAPIClient) PickupLocations(ctx context.Context, token string) (*PickupLocationsResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnPickupLocations != nil {
		return m.OnPickupLocations(ctx, token)
	}

	return &PickupLocationsResponse{
		Data: []Location{
			{
				ID:                1,
				PickupLocation:    "Primary",
				Name:              "Main Warehouse",
				Address:           "12 Industrial Estate",
				City:              "Noida",
				State:             "Uttar Pradesh",
				Country:           "India",
				PinCode:           "201301",
				Phone:             "9999999999",
				IsPrimaryLocation: 1,
			},
		},
	}, nil
}

// CreateOrder creates a mock shipment order.
func (m *MockAPIClient) CreateOrder(ctx context.Context, token string, req *OrderRequest) (*CreateOrderResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, token, req)
	}

	resp := &CreateOrderResponse{
		OrderID:    time.Now().UnixNano() % 100000000,
		ShipmentID: time.Now().UnixNano() % 100000000,
		Status:     "NEW",
	}
	resp.Raw, _ = json.Marshal(resp)
	return resp, nil
}

// CancelOrders cancels mock orders.
func (m *MockAPIClient) CancelOrders(ctx context.Context, token string, req *CancelRequest) (*CancelResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCancelOrders != nil {
		return m.OnCancelOrders(ctx, token, req)
	}

	resp := &CancelResponse{
		Message: fmt.Sprintf("%d order(s) cancelled", len(req.IDs)),
	}
	resp.Raw, _ = json.Marshal(resp)
	return resp, nil
}

// GetOrder returns a mock order detail.
func (m *MockAPIClient) GetOrder(ctx context.Context, token string, orderID int64) (*OrderDetailResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnGetOrder != nil {
		return m.OnGetOrder(ctx, token, orderID)
	}

	resp := &OrderDetailResponse{
		Data: OrderDetailData{
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
			Shipments: ShipmentDetail{
				Length:  20,
				Breadth: 15,
				Height:  10,
				Weight:  0.8,
			},
		},
	}
	resp.Raw, _ = json.Marshal(resp)
	return resp, nil
}

// CreateReturn creates a mock return order.
func (m *MockAPIClient) CreateReturn(ctx context.Context, token string, req *ReturnRequest) (*ReturnResponse, error) {
	if err := m.simulate(); err != nil {
		return nil, err
	}
	if m.OnCreateReturn != nil {
		return m.OnCreateReturn(ctx, token, req)
	}

	resp := &ReturnResponse{
		OrderID:    time.Now().UnixNano() % 100000000,
		ShipmentID: time.Now().UnixNano() % 100000000,
		Status:     "RETURN PENDING",
	}
	resp.Raw, _ = json.Marshal(resp)
	return resp, nil
}

var _ APIClient = (*MockAPIClient)(nil)
