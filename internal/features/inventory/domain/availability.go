package domain

// ShippingStatus is the upstream online fulfillment status. The upstream value is
// free-form; the constants below are only the values known to the dashboard.
type ShippingStatus string

const (
	ShippingStatusInStock       ShippingStatus = "InStock"
	ShippingStatusSoldOutOnline ShippingStatus = "SoldOutOnline"
	ShippingStatusBackOrder     ShippingStatus = "BackOrder"
)

// PickupStatus is the upstream in-store pickup status. Free-form like ShippingStatus.
type PickupStatus string

const (
	PickupStatusInStock    PickupStatus = "InStock"
	PickupStatusOutOfStock PickupStatus = "OutOfStock"
	PickupStatusComingSoon PickupStatus = "ComingSoon"
)

// TrackedSet is what gets asked upstream on every fetch.
type TrackedSet struct {
	// SKUs are the tracked product identifiers, in display order.
	SKUs []string `json:"skus"`
	// PostalCode is used upstream to resolve nearby stores.
	PostalCode string `json:"postal_code"`
	// Locations are the store location ids to include.
	Locations []string `json:"locations"`
}

// Availability is one record of the upstream availability response.
type Availability struct {
	// SKU echoes one of the tracked identifiers.
	SKU string `json:"sku"`
	// SellerID identifies the marketplace seller.
	SellerID string `json:"sellerId"`
	// Pickup describes store pickup availability.
	Pickup Pickup `json:"pickup"`
	// Shipping describes online shipping availability.
	Shipping Shipping `json:"shipping"`
	// SaleChannelExclusivity is set for online-only or in-store-only products.
	SaleChannelExclusivity string `json:"saleChannelExclusivity,omitempty"`
}

// Shipping describes online shipping availability.
type Shipping struct {
	Status            ShippingStatus `json:"status"`
	QuantityRemaining int            `json:"quantityRemaining"`
	Purchasable       bool           `json:"purchasable"`
	IsBackorderable   bool           `json:"isBackorderable"`
}

// Pickup describes store pickup availability.
type Pickup struct {
	Status      PickupStatus `json:"status"`
	Purchasable bool         `json:"purchasable"`
	Locations   []Location   `json:"locations"`
}

// Location is the per-store stock of one SKU.
type Location struct {
	Name                string `json:"name"`
	LocationKey         string `json:"locationKey"`
	QuantityOnHand      int    `json:"quantityOnHand"`
	HasInventory        bool   `json:"hasInventory"`
	IsReservable        bool   `json:"isReservable"`
	FulfillmentKey      string `json:"fulfillmentKey,omitempty"`
	SupportsFulfillment bool   `json:"supportsFulfillment,omitempty"`
}

// StatusLabel returns the display text for a shipping status.
func (s ShippingStatus) StatusLabel() string {
	if s == ShippingStatusSoldOutOnline {
		return "Sold Out"
	}
	return string(s)
}

// StatusLabel returns the display text for a pickup status.
func (s PickupStatus) StatusLabel() string {
	if s == PickupStatusOutOfStock {
		return "Out of Stock"
	}
	return string(s)
}
