// Package server exposes the shipment service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arvan/shipgate/internal/shipment"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the shipment gateway.
type Server struct {
	port     int
	service  *shipment.Service
	registry *carrier.Registry
	logger   *otelzap.Logger
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, service *shipment.Service, registry *carrier.Registry, logger *otelzap.Logger) *Server {
	return &Server{
		port:     cfg.Port,
		service:  service,
		registry: registry,
		logger:   logger,
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler builds the route table. Exposed separately so tests can drive
// the server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/carriers", s.handleCarriers)
	mux.HandleFunc("/api/shipments", s.handleCreate)
	mux.HandleFunc("/api/shipments/cancel", s.handleCancel)
	mux.HandleFunc("/api/shipments/return", s.handleReturn)
	mux.HandleFunc("/api/pickup-locations", s.handlePickupLocations)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Reasons []string    `json:"reasons,omitempty"`
}

type cancelRequest struct {
	OrderID string `json:"orderId"`
}

type returnRequest struct {
	OrderID        string `json:"orderId"`
	Reason         string `json:"reason"`
	AdditionalInfo string `json:"additionalInfo"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	requestID := uuid.NewString()

	var payload carrier.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, requestID, "create", http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	result, err := s.service.Create(r.Context(), &payload)
	if err != nil {
		s.writeMappedError(w, requestID, "create", err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	requestID := uuid.NewString()

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, requestID, "cancel", http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	if req.OrderID == "" {
		s.writeError(w, requestID, "cancel", http.StatusBadRequest, errors.New("orderId is required"))
		return
	}

	result, err := s.service.Cancel(r.Context(), req.OrderID)
	if err != nil {
		s.writeMappedError(w, requestID, "cancel", err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	requestID := uuid.NewString()

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, requestID, "return", http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	if req.OrderID == "" {
		s.writeError(w, requestID, "return", http.StatusBadRequest, errors.New("orderId is required"))
		return
	}

	result, err := s.service.Return(r.Context(), req.OrderID, req.Reason, req.AdditionalInfo)
	if err != nil {
		s.writeMappedError(w, requestID, "return", err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: s.registry.Names()})
}

func (s *Server) handlePickupLocations(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	requestID := uuid.NewString()

	locations, err := s.service.PickupLocations(r.Context())
	if err != nil {
		s.writeMappedError(w, requestID, "pickup_locations", err)
		return
	}
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: locations})
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	s.writeJSON(w, http.StatusMethodNotAllowed, response{
		Success: false,
		Error:   "method not allowed, use " + method,
	})
	return false
}

// writeMappedError translates the service error taxonomy to HTTP
// statuses. Carrier-reported failures come back as 502 so callers can
// tell a carrier outage from a bad request.
func (s *Server) writeMappedError(w http.ResponseWriter, requestID, operation string, err error) {
	var invalid *shipment.InvalidPayloadError
	var cerr *carrier.Error

	switch {
	case errors.Is(err, shipment.ErrUnauthorized):
		s.writeError(w, requestID, operation, http.StatusUnauthorized, err)
	case errors.As(err, &invalid):
		s.writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Error:   "invalid order payload",
			Reasons: invalid.Reasons,
		})
		s.logError(requestID, operation, http.StatusBadRequest, err)
	case errors.Is(err, shipment.ErrOrderNotFound):
		s.writeError(w, requestID, operation, http.StatusNotFound, err)
	case errors.Is(err, shipment.ErrNotShipped):
		s.writeError(w, requestID, operation, http.StatusConflict, err)
	case errors.As(err, &cerr):
		s.writeError(w, requestID, operation, http.StatusBadGateway, err)
	default:
		s.writeError(w, requestID, operation, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestID, operation string, status int, err error) {
	s.logError(requestID, operation, status, err)
	s.writeJSON(w, status, response{Success: false, Error: err.Error()})
}

func (s *Server) logError(requestID, operation string, status int, err error) {
	s.logger.Warn("Request failed",
		zap.String("request_id", requestID),
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.Error(err),
	)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
