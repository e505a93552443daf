package shipment

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors of the shipment use cases. Carrier-side failures are
// reported as *carrier.Error and are not redeclared here.
var (
	// ErrUnauthorized indicates no valid carrier token could be obtained.
	ErrUnauthorized = errors.New("unauthorized: no valid carrier token")

	// ErrOrderNotFound indicates the local order record does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotShipped indicates the order has no carrier order id yet.
	ErrNotShipped = errors.New("order has not been shipped")
)

// InvalidPayloadError reports a payload rejected by schema validation.
type InvalidPayloadError struct {
	Reasons []string
}

func (e *InvalidPayloadError) Error() string {
	if len(e.Reasons) == 0 {
		return "invalid order payload"
	}
	return fmt.Sprintf("invalid order payload: %s", strings.Join(e.Reasons, "; "))
}
