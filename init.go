package main

import (
	"context"
	"fmt"

	"github.com/arvan/shipgate/internal/config"
	"github.com/arvan/shipgate/internal/shipment"
	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/internal/store/postgres"
	"github.com/arvan/shipgate/internal/telemetry"
	"github.com/arvan/shipgate/internal/validation"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/arvan/shipgate/pkg/carrier/shiprocket"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initStore(ctx context.Context, cfg *config.Config) (*postgres.Store, error) {
	return postgres.New(ctx, cfg.DatabaseURL)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *carrier.Registry {
	registry := carrier.NewRegistry()

	sr := shiprocket.New(shiprocket.Config{
		BaseURL: cfg.ShiprocketBaseURL,
		UseMock: cfg.ShiprocketUseMock,
	}, logger, tracer)
	registry.Register(sr)

	return registry
}

func initService(cfg *config.Config, registry *carrier.Registry, st *postgres.Store, logger *otelzap.Logger, metrics *telemetry.Metrics) (*shipment.Service, error) {
	client, err := registry.Get(cfg.Carrier)
	if err != nil {
		return nil, fmt.Errorf("selecting carrier %q: %w", cfg.Carrier, err)
	}

	tokens := shipment.NewTokenSource(st, client, shipment.Credentials{
		Email:    cfg.ShiprocketEmail,
		Password: cfg.ShiprocketPassword,
	}, cfg.CarrierTokenTTL, logger, metrics)

	origin := shipment.ReturnOrigin{
		Name:    cfg.ReturnName,
		Address: cfg.ReturnAddress,
		City:    cfg.ReturnCity,
		State:   cfg.ReturnState,
		Country: cfg.ReturnCountry,
		Pincode: cfg.ReturnPincode,
		Phone:   cfg.ReturnPhone,
		Email:   cfg.ReturnEmail,
	}

	var orders store.OrderStore = st
	return shipment.New(client, tokens, orders, validation.New(), origin, logger, metrics), nil
}
