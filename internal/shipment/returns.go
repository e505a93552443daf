package shipment

import (
	"github.com/arvan/shipgate/internal/store"
	"github.com/arvan/shipgate/pkg/carrier"
)

// skuPrefix is prepended to color+size to derive the carrier-facing SKU
// of a line item.
const skuPrefix = "ARV"

// ReturnOrigin is the configured facility a returned item is shipped
// back to. It is supplied by the operator, never hard-coded.
type ReturnOrigin struct {
	Name    string
	Address string
	City    string
	State   string
	Country string
	Pincode string
	Phone   string
	Email   string
}

// BuildReturnPayload assembles a return-shipment payload by merging the
// locally stored order (date, items, payment, total) with the carrier's
// record of the original shipment (customer identity and package
// dimensions). The customer becomes the pickup side; the configured
// return facility becomes the shipping side.
func BuildReturnPayload(order *store.Order, detail *carrier.OrderDetail, origin ReturnOrigin) *carrier.ReturnPayload {
	items := make([]carrier.OrderItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = carrier.OrderItem{
			Name:         it.ProductName,
			SKU:          skuPrefix + it.Color + it.Size,
			Units:        it.Quantity,
			SellingPrice: it.PriceAtOrder,
		}
	}

	payment := "Prepaid"
	if order.Paid {
		payment = "cod"
	}

	return &carrier.ReturnPayload{
		OrderID:   detail.ID,
		OrderDate: order.CreatedAt.Format("2006-01-02"),
		Pickup: carrier.ReturnParty{
			Name:    detail.CustomerName,
			Address: detail.CustomerAddress,
			City:    detail.CustomerCity,
			State:   detail.CustomerState,
			Country: detail.CustomerCountry,
			Pincode: detail.CustomerPincode,
			Email:   detail.CustomerEmail,
			Phone:   detail.CustomerPhone,
		},
		Shipping: carrier.ReturnParty{
			Name:    origin.Name,
			Address: origin.Address,
			City:    origin.City,
			State:   origin.State,
			Country: origin.Country,
			Pincode: origin.Pincode,
			Email:   origin.Email,
			Phone:   origin.Phone,
		},
		Items:         items,
		PaymentMethod: payment,
		SubTotal:      order.Total,
		Length:        detail.Shipment.Length,
		Breadth:       detail.Shipment.Breadth,
		Height:        detail.Shipment.Height,
		Weight:        detail.Shipment.Weight,
	}
}
