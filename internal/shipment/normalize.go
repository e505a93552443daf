package shipment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arvan/shipgate/pkg/carrier"
)

// defaultPickupLocation is the fallback used when the carrier exposes no
// usable pickup location.
const defaultPickupLocation = "Home"

// StripTrailingPincode removes a redundant trailing " - <pincode>"
// segment from an address. Upstream inputs sometimes embed the pincode
// at the end of the address string; the carrier wants them separate.
// Addresses without the trailing segment are returned unchanged.
func StripTrailingPincode(address, pincode string) string {
	if pincode == "" {
		return address
	}

	re := regexp.MustCompile(`\s*-\s*` + regexp.QuoteMeta(pincode) + `\s*$`)
	loc := re.FindStringIndex(address)
	if loc == nil {
		return address
	}
	return strings.TrimSpace(address[:loc[0]])
}

// ResolvePickupLocation picks the pickup location to use for an order:
// the first candidate's dedicated identifier if present, else its name,
// else the default fallback.
func ResolvePickupLocation(candidates []carrier.PickupLocation) string {
	if len(candidates) == 0 {
		return defaultPickupLocation
	}
	if candidates[0].Code != "" {
		return candidates[0].Code
	}
	if candidates[0].Name != "" {
		return candidates[0].Name
	}
	return defaultPickupLocation
}

// DedupeSKUs makes SKUs pairwise distinct within one payload, keeping
// input order. A repeated SKU gets the first unused "_1", "_2", ...
// suffix appended to its original value. Running it on already-unique
// items is a no-op.
func DedupeSKUs(items []carrier.OrderItem) []carrier.OrderItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]carrier.OrderItem, len(items))

	for i, item := range items {
		sku := item.SKU
		for n := 1; ; n++ {
			if _, used := seen[sku]; !used {
				break
			}
			sku = fmt.Sprintf("%s_%d", item.SKU, n)
		}
		seen[sku] = struct{}{}
		item.SKU = sku
		out[i] = item
	}
	return out
}
