package domain

import (
	inventory "stock-tracker/internal/features/inventory/domain"
)

// StoreView is a store with stock, as listed on a card.
type StoreView struct {
	Name           string `json:"name"`
	LocationKey    string `json:"locationKey"`
	QuantityOnHand int    `json:"quantityOnHand"`
}

// ShippingBadge is the shipping half of a card.
type ShippingBadge struct {
	Available bool   `json:"available"`
	Label     string `json:"label"`
	// Quantity is shown only when positive.
	Quantity int `json:"quantity,omitempty"`
}

// PickupBadge is the store pickup half of a card.
type PickupBadge struct {
	Available bool        `json:"available"`
	Label     string      `json:"label"`
	Stores    []StoreView `json:"stores"`
}

// Card is the dashboard view of one record.
type Card struct {
	SKU       string        `json:"sku"`
	URL       string        `json:"url"`
	Available bool          `json:"available"`
	Shipping  ShippingBadge `json:"shipping"`
	Pickup    PickupBadge   `json:"pickup"`
}

// BuildCard maps a record to its card. Availability comes from the shared
// evaluator; labels come from the raw status values.
func BuildCard(a inventory.Availability, productURLBase string) Card {
	d := inventory.Evaluate(a)

	stores := make([]StoreView, 0)
	for _, loc := range inventory.StoresWithStock(a.Pickup) {
		stores = append(stores, StoreView{
			Name:           loc.Name,
			LocationKey:    loc.LocationKey,
			QuantityOnHand: loc.QuantityOnHand,
		})
	}

	card := Card{
		SKU:       a.SKU,
		URL:       productURLBase + a.SKU,
		Available: d.Any(),
		Shipping: ShippingBadge{
			Available: d.Shipping,
			Label:     a.Shipping.Status.StatusLabel(),
		},
		Pickup: PickupBadge{
			Available: d.Pickup,
			Label:     a.Pickup.Status.StatusLabel(),
			Stores:    stores,
		},
	}
	if a.Shipping.QuantityRemaining > 0 {
		card.Shipping.Quantity = a.Shipping.QuantityRemaining
	}
	return card
}

// BuildCards maps a batch to cards, preserving order.
func BuildCards(records []inventory.Availability, productURLBase string) []Card {
	cards := make([]Card, len(records))
	for i, r := range records {
		cards[i] = BuildCard(r, productURLBase)
	}
	return cards
}
