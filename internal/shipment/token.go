package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/internal/telemetry"
	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// DefaultTokenTTL is the carrier-enforced bearer token lifetime after
// which a cached token is considered stale.
const DefaultTokenTTL = 9 * 24 * time.Hour

// Credentials are the carrier login credentials, sourced from
// configuration.
type Credentials struct {
	Email    string
	Password string
}

// TokenSource hands out a valid carrier bearer token, refreshing it
// through the carrier's login endpoint when the cached one is stale.
// Concurrent refreshes are tolerated: both may log in, the last write
// wins, and the cache always holds a token the carrier actually issued.
type TokenSource struct {
	store   store.TokenStore
	carrier carrier.Client
	creds   Credentials
	ttl     time.Duration
	logger  *otelzap.Logger
	metrics *telemetry.Metrics

	now func() time.Time
}

// NewTokenSource creates a token source. A non-positive ttl falls back
// to DefaultTokenTTL.
func NewTokenSource(tokens store.TokenStore, client carrier.Client, creds Credentials, ttl time.Duration, logger *otelzap.Logger, metrics *telemetry.Metrics) *TokenSource {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenSource{
		store:   tokens,
		carrier: client,
		creds:   creds,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Token returns a carrier token that is valid at the time of the call.
// A cached token younger than the ttl is returned without any network
// call; otherwise a fresh login is performed and the cache replaced.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	cached, err := t.store.CachedToken(ctx)
	if err != nil {
		// A broken cache read is not fatal; fall through to a fresh login.
		t.logger.Warn("Token cache read failed", zap.Error(err))
	}

	now := t.now()
	if cached != nil && now.Sub(cached.IssuedAt) < t.ttl {
		return cached.Value, nil
	}

	token, err := t.carrier.Login(ctx, t.creds.Email, t.creds.Password)
	if err != nil {
		t.metrics.RecordTokenRefresh("failure")
		t.logger.Error("Carrier login failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if token == "" {
		t.metrics.RecordTokenRefresh("failure")
		return "", ErrUnauthorized
	}

	if err := t.store.ReplaceToken(ctx, token, now); err != nil {
		// The token itself is usable; losing the cache write only costs
		// an extra login later.
		t.logger.Warn("Token cache write failed", zap.Error(err))
	}

	t.metrics.RecordTokenRefresh("success")
	t.logger.Info("Carrier token refreshed")
	return token, nil
}
