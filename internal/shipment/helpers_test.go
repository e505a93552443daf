package shipment_test

import (
	"context"
	"time"

	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Prometheus collectors register against the default registry, so the
// package shares one Metrics instance across tests.
var testMetrics = telemetry.NewMetrics()

func testLogger() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}

// fakeTokenStore is an in-memory store.TokenStore with error injection.
type fakeTokenStore struct {
	token    *store.AuthToken
	readErr  error
	writeErr error

	replaceCalls int
}

func (f *fakeTokenStore) CachedToken(ctx context.Context) (*store.AuthToken, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.token, nil
}

func (f *fakeTokenStore) ReplaceToken(ctx context.Context, value string, issuedAt time.Time) error {
	f.replaceCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.token = &store.AuthToken{Value: value, IssuedAt: issuedAt}
	return nil
}

// fakeOrderStore is an in-memory store.OrderStore with error injection.
type fakeOrderStore struct {
	orders map[string]*store.Order

	setCarrierIDErr  error
	setReturnInfoErr error

	carrierIDCalls  int
	returnInfoCalls int
}

func newFakeOrderStore(orders ...*store.Order) *fakeOrderStore {
	f := &fakeOrderStore{orders: make(map[string]*store.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderStore) OrderByID(ctx context.Context, id string, includeItems bool) (*store.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *o
	if !includeItems {
		copied.Items = nil
	}
	return &copied, nil
}

func (f *fakeOrderStore) SetCarrierOrderID(ctx context.Context, id string, carrierOrderID int64) error {
	f.carrierIDCalls++
	if f.setCarrierIDErr != nil {
		return f.setCarrierIDErr
	}
	o, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.CarrierOrderID = carrierOrderID
	return nil
}

func (f *fakeOrderStore) SetReturnInfo(ctx context.Context, id string, reason, additionalInfo string, state store.Fulfillment) error {
	f.returnInfoCalls++
	if f.setReturnInfoErr != nil {
		return f.setReturnInfoErr
	}
	o, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.ReturnReason = reason
	o.ReturnAdditionalInfo = additionalInfo
	o.Fulfillment = state
	return nil
}
