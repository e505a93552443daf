// Package shipment implements the gateway's use cases: creating,
// cancelling, and returning carrier shipments for locally managed
// orders, plus listing pickup locations.
package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/internal/telemetry"
	"github.com/arvan/shipgate/internal/validation"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates the shipment use cases against one carrier.
type Service struct {
	carrier   carrier.Client
	tokens    *TokenSource
	orders    store.OrderStore
	validator validation.PayloadValidator
	origin    ReturnOrigin
	logger    *otelzap.Logger
	metrics   *telemetry.Metrics
}

// New creates a shipment service.
func New(client carrier.Client, tokens *TokenSource, orders store.OrderStore, validator validation.PayloadValidator, origin ReturnOrigin, logger *otelzap.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{
		carrier:   client,
		tokens:    tokens,
		orders:    orders,
		validator: validator,
		origin:    origin,
		logger:    logger,
		metrics:   metrics,
	}
}

// Create normalizes and submits a shipment order to the carrier, then
// records the carrier-assigned order id on the local order. Carrier
// failures are surfaced to the caller and nothing is persisted.
func (s *Service) Create(ctx context.Context, payload *carrier.OrderPayload) (result *carrier.CreateOrderResult, err error) {
	defer s.record("create", time.Now(), &err)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload.BillingAddress = StripTrailingPincode(payload.BillingAddress, payload.BillingPincode)

	// Pickup-location lookup is a soft failure: fall back to the default
	// rather than refusing the order.
	locations, err := s.carrier.PickupLocations(ctx, token)
	if err != nil {
		s.logger.Warn("Pickup location lookup failed, using default", zap.Error(err))
		payload.PickupLocation = defaultPickupLocation
	} else {
		payload.PickupLocation = ResolvePickupLocation(locations)
	}

	if res := s.validator.Validate(payload); !res.OK {
		return nil, &InvalidPayloadError{Reasons: res.Reasons}
	}

	payload.Items = DedupeSKUs(payload.Items)

	created, err := s.carrier.CreateOrder(ctx, token, payload)
	if err != nil {
		s.recordCarrierError("create", err)
		return nil, err
	}

	if err := s.orders.SetCarrierOrderID(ctx, payload.OrderID, created.OrderID); err != nil {
		// The carrier shipment exists; the local record is out of sync.
		s.logger.Error("Failed to record carrier order id",
			zap.String("order_id", payload.OrderID),
			zap.Int64("carrier_order_id", created.OrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("recording carrier order id: %w", err)
	}

	s.logger.Info("Shipment created",
		zap.String("order_id", payload.OrderID),
		zap.Int64("carrier_order_id", created.OrderID),
	)
	return created, nil
}

// Cancel cancels the carrier shipment of an order. Orders that were
// never shipped fail fast with ErrNotShipped.
func (s *Service) Cancel(ctx context.Context, orderID string) (result *carrier.CancelResult, err error) {
	defer s.record("cancel", time.Now(), &err)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.OrderByID(ctx, orderID, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		return nil, err
	}
	if order.CarrierOrderID == 0 {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotShipped)
	}

	cancelled, err := s.carrier.CancelOrders(ctx, token, []int64{order.CarrierOrderID})
	if err != nil {
		s.recordCarrierError("cancel", err)
		return nil, err
	}

	s.logger.Info("Shipment cancelled",
		zap.String("order_id", orderID),
		zap.Int64("carrier_order_id", order.CarrierOrderID),
	)
	return cancelled, nil
}

// Return submits a return shipment for an order and, on success, records
// the return reason and flips the fulfillment state to RETURNING. On
// carrier failure nothing is persisted.
func (s *Service) Return(ctx context.Context, orderID, reason, additionalInfo string) (result *carrier.ReturnResult, err error) {
	defer s.record("return", time.Now(), &err)

	// Token acquisition and the local order load are independent; run
	// them concurrently. The authenticated carrier calls below still
	// happen strictly after both.
	var (
		token string
		order *store.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		token, err = s.tokens.Token(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		order, err = s.orders.OrderByID(gctx, orderID, true)
		if err != nil && errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if order.CarrierOrderID == 0 {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotShipped)
	}

	detail, err := s.carrier.GetOrder(ctx, token, order.CarrierOrderID)
	if err != nil {
		s.recordCarrierError("return", err)
		return nil, err
	}

	payload := BuildReturnPayload(order, detail, s.origin)

	returned, err := s.carrier.CreateReturn(ctx, token, payload)
	if err != nil {
		s.recordCarrierError("return", err)
		return nil, err
	}

	if err := s.orders.SetReturnInfo(ctx, orderID, reason, additionalInfo, store.FulfillmentReturning); err != nil {
		s.logger.Error("Failed to record return info",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("recording return info: %w", err)
	}

	s.logger.Info("Return created",
		zap.String("order_id", orderID),
		zap.Int64("carrier_order_id", order.CarrierOrderID),
	)
	return returned, nil
}

// PickupLocations lists the carrier's pickup locations verbatim.
func (s *Service) PickupLocations(ctx context.Context) (locations []carrier.PickupLocation, err error) {
	defer s.record("pickup_locations", time.Now(), &err)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	locations, err = s.carrier.PickupLocations(ctx, token)
	if err != nil {
		s.recordCarrierError("pickup_locations", err)
		return nil, err
	}
	return locations, nil
}

func (s *Service) record(operation string, start time.Time, err *error) {
	status := "success"
	if *err != nil {
		status = "error"
	}
	s.metrics.RecordRequest(operation, status, time.Since(start).Seconds())
}

func (s *Service) recordCarrierError(operation string, err error) {
	var cerr *carrier.Error
	if errors.As(err, &cerr) {
		s.metrics.RecordCarrierError(operation, cerr.Code)
		return
	}
	s.metrics.RecordCarrierError(operation, "unknown")
}
