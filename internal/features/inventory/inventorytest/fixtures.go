// Package inventorytest holds availability fixtures shared by the dashboard and
// alert tests, so both consumers of the evaluator are checked against one table.
package inventorytest

import "stock-tracker/internal/features/inventory/domain"

// Fixture is one availability record with its expected verdict.
type Fixture struct {
	Name         string
	Record       domain.Availability
	WantShipping bool
	WantPickup   bool
}

// Fixtures returns a fresh copy of the shared fixture table.
func Fixtures() []Fixture {
	return []Fixture{
		{
			Name: "sold out everywhere",
			Record: domain.Availability{
				SKU:      "18391208",
				Shipping: domain.Shipping{Status: domain.ShippingStatusSoldOutOnline},
				Pickup: domain.Pickup{Status: domain.PickupStatusOutOfStock, Locations: []domain.Location{
					{Name: "Burnaby", LocationKey: "600"},
				}},
			},
		},
		{
			Name: "purchasable online with unknown status",
			Record: domain.Availability{
				SKU:      "18391209",
				Shipping: domain.Shipping{Status: "Preorder", Purchasable: true},
				Pickup:   domain.Pickup{Status: domain.PickupStatusComingSoon},
			},
			WantShipping: true,
		},
		{
			Name: "in stock status without purchasable flag",
			Record: domain.Availability{
				SKU:      "18391210",
				Shipping: domain.Shipping{Status: domain.ShippingStatusInStock, QuantityRemaining: 3},
				Pickup:   domain.Pickup{Status: domain.PickupStatusOutOfStock},
			},
			WantShipping: true,
		},
		{
			Name: "store quantity without inventory flag",
			Record: domain.Availability{
				SKU:      "18391211",
				Shipping: domain.Shipping{Status: domain.ShippingStatusBackOrder, IsBackorderable: true},
				Pickup: domain.Pickup{Status: domain.PickupStatusOutOfStock, Locations: []domain.Location{
					{Name: "Richmond", LocationKey: "134"},
					{Name: "Coquitlam", LocationKey: "973", QuantityOnHand: 2},
				}},
			},
			WantPickup: true,
		},
		{
			Name: "inventory flag without quantity",
			Record: domain.Availability{
				SKU:      "18391212",
				Shipping: domain.Shipping{Status: domain.ShippingStatusSoldOutOnline},
				Pickup: domain.Pickup{Status: "Unknown", Locations: []domain.Location{
					{Name: "Surrey", LocationKey: "961", HasInventory: true},
				}},
			},
			WantPickup: true,
		},
		{
			Name: "pickup purchasable with no locations",
			Record: domain.Availability{
				SKU:      "18391213",
				Shipping: domain.Shipping{Status: domain.ShippingStatusSoldOutOnline},
				Pickup:   domain.Pickup{Status: domain.PickupStatusInStock, Purchasable: true},
			},
			WantPickup: true,
		},
		{
			Name: "available through both channels",
			Record: domain.Availability{
				SKU:      "18391214",
				Shipping: domain.Shipping{Status: domain.ShippingStatusInStock, Purchasable: true, QuantityRemaining: 10},
				Pickup: domain.Pickup{Status: domain.PickupStatusInStock, Purchasable: true, Locations: []domain.Location{
					{Name: "Vancouver", LocationKey: "152", QuantityOnHand: 5, HasInventory: true, IsReservable: true},
				}},
			},
			WantShipping: true,
			WantPickup:   true,
		},
		{
			Name: "unknown statuses and no flags",
			Record: domain.Availability{
				SKU:      "18391215",
				Shipping: domain.Shipping{Status: "NotAvailable"},
				Pickup:   domain.Pickup{Status: "NotAvailable", Locations: []domain.Location{}},
			},
		},
	}
}

// Records returns the fixture records in table order.
func Records() []domain.Availability {
	fixtures := Fixtures()
	out := make([]domain.Availability, len(fixtures))
	for i, f := range fixtures {
		out[i] = f.Record
	}
	return out
}

// Unavailable returns a record that no channel can fulfil.
func Unavailable(sku string) domain.Availability {
	return domain.Availability{
		SKU:      sku,
		Shipping: domain.Shipping{Status: domain.ShippingStatusSoldOutOnline},
		Pickup:   domain.Pickup{Status: domain.PickupStatusOutOfStock},
	}
}

// InStock returns a record available for shipping.
func InStock(sku string) domain.Availability {
	return domain.Availability{
		SKU:      sku,
		Shipping: domain.Shipping{Status: domain.ShippingStatusInStock, Purchasable: true, QuantityRemaining: 1},
		Pickup:   domain.Pickup{Status: domain.PickupStatusOutOfStock},
	}
}
