package domain_test

import (
	"testing"

	"stock-tracker/internal/features/inventory/domain"
	"stock-tracker/internal/features/inventory/inventorytest"

	"github.com/stretchr/testify/assert"
)

// TestEvaluate_Fixtures verifies the evaluator against the shared fixture table.
func TestEvaluate_Fixtures(t *testing.T) {
	for _, f := range inventorytest.Fixtures() {
		t.Run(f.Name, func(t *testing.T) {
			d := domain.Evaluate(f.Record)
			assert.Equal(t, f.WantShipping, d.Shipping, "shipping")
			assert.Equal(t, f.WantPickup, d.Pickup, "pickup")
			assert.Equal(t, f.WantShipping || f.WantPickup, d.Any(), "any")
		})
	}
}

// TestShippingAvailable_PurchasableOverridesStatus verifies purchasable wins for every status.
func TestShippingAvailable_PurchasableOverridesStatus(t *testing.T) {
	statuses := []domain.ShippingStatus{
		domain.ShippingStatusInStock,
		domain.ShippingStatusSoldOutOnline,
		domain.ShippingStatusBackOrder,
		"",
		"SomethingNew",
	}
	for _, s := range statuses {
		assert.True(t, domain.ShippingAvailable(domain.Shipping{Status: s, Purchasable: true}), string(s))
	}
}

// TestShippingAvailable_StatusAlone verifies InStock is sufficient without purchasable.
func TestShippingAvailable_StatusAlone(t *testing.T) {
	assert.True(t, domain.ShippingAvailable(domain.Shipping{Status: domain.ShippingStatusInStock}))
	assert.False(t, domain.ShippingAvailable(domain.Shipping{Status: "instock"}))
	assert.False(t, domain.ShippingAvailable(domain.Shipping{Status: domain.ShippingStatusBackOrder, IsBackorderable: true}))
}

// TestPickupAvailable_EmptyLocations verifies no locations and not purchasable is unavailable.
func TestPickupAvailable_EmptyLocations(t *testing.T) {
	assert.False(t, domain.PickupAvailable(domain.Pickup{Status: domain.PickupStatusInStock}))
	assert.False(t, domain.PickupAvailable(domain.Pickup{Locations: []domain.Location{}}))
}

// TestPickupAvailable_QuantityWithoutFlag verifies quantity alone makes pickup available.
func TestPickupAvailable_QuantityWithoutFlag(t *testing.T) {
	p := domain.Pickup{Locations: []domain.Location{
		{LocationKey: "1"},
		{LocationKey: "2", QuantityOnHand: 1, HasInventory: false},
	}}
	assert.True(t, domain.PickupAvailable(p))

	stores := domain.StoresWithStock(p)
	assert.Len(t, stores, 1)
	assert.Equal(t, "2", stores[0].LocationKey)
}

// TestBatchHasStock verifies the batch verdict.
func TestBatchHasStock(t *testing.T) {
	assert.False(t, domain.BatchHasStock(nil))
	assert.False(t, domain.BatchHasStock([]domain.Availability{}))

	none := []domain.Availability{inventorytest.Unavailable("A"), inventorytest.Unavailable("B")}
	assert.False(t, domain.BatchHasStock(none))
	assert.Equal(t, 0, domain.CountAvailable(none))

	one := []domain.Availability{inventorytest.Unavailable("A"), inventorytest.InStock("B"), inventorytest.Unavailable("C")}
	assert.True(t, domain.BatchHasStock(one))
	assert.Equal(t, 1, domain.CountAvailable(one))
}

// TestEvaluateAll verifies order is preserved.
func TestEvaluateAll(t *testing.T) {
	decisions := domain.EvaluateAll([]domain.Availability{inventorytest.InStock("A"), inventorytest.Unavailable("B")})
	assert.Equal(t, []domain.Decision{{Shipping: true}, {}}, decisions)
}

// TestStatusLabel verifies the display mapping passes unknown values through.
func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Sold Out", domain.ShippingStatusSoldOutOnline.StatusLabel())
	assert.Equal(t, "BackOrder", domain.ShippingStatusBackOrder.StatusLabel())
	assert.Equal(t, "Out of Stock", domain.PickupStatusOutOfStock.StatusLabel())
	assert.Equal(t, "ComingSoon", domain.PickupStatusComingSoon.StatusLabel())
	assert.Equal(t, "Preorder", domain.ShippingStatus("Preorder").StatusLabel())
}
