package carrier_test

import (
	"errors"
	"testing"

	"github.com/arvan/shipgate/pkg/carrier"
	"github.com/arvan/shipgate/pkg/carrier/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	registry := carrier.NewRegistry()

	mockCarrier := mock.New("test-carrier")
	registry.Register(mockCarrier)

	got, err := registry.Get("test-carrier")
	require.NoError(t, err, "carrier should be registered")
	assert.Equal(t, "test-carrier", got.Name())
}

func TestRegistry_Register_Override(t *testing.T) {
	registry := carrier.NewRegistry()

	registry.Register(mock.New("test-carrier"))
	assert.Equal(t, 1, registry.Count())

	// Register again with same name should override
	registry.Register(mock.New("test-carrier"))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	registry := carrier.NewRegistry()

	_, err := registry.Get("nonexistent")
	assert.Error(t, err, "should return error for unregistered carrier")
	assert.True(t, errors.Is(err, carrier.ErrCarrierNotFound))
}

func TestRegistry_Names(t *testing.T) {
	registry := carrier.NewRegistry()

	registry.Register(mock.New("shiprocket"))
	registry.Register(mock.New("other"))

	names := registry.Names()
	assert.Len(t, names, 2)
	assert.Contains(t, names, "shiprocket")
	assert.Contains(t, names, "other")
}
