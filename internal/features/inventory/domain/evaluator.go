package domain

// Decision is the availability verdict for one record.
type Decision struct {
	Shipping bool `json:"shipping"`
	Pickup   bool `json:"pickup"`
}

// Any reports whether the record can be bought through any channel.
func (d Decision) Any() bool {
	return d.Shipping || d.Pickup
}

// Evaluate is the only place where availability is decided. The dashboard and the
// stock alert both call it; neither derives the rule on its own.
func Evaluate(a Availability) Decision {
	return Decision{
		Shipping: ShippingAvailable(a.Shipping),
		Pickup:   PickupAvailable(a.Pickup),
	}
}

// ShippingAvailable: purchasable online, or the status alone says InStock.
func ShippingAvailable(s Shipping) bool {
	return s.Purchasable || s.Status == ShippingStatusInStock
}

// PickupAvailable: purchasable for pickup, or at least one store has stock.
func PickupAvailable(p Pickup) bool {
	return p.Purchasable || len(StoresWithStock(p)) > 0
}

// StoresWithStock returns the locations with a positive quantity or an inventory flag.
func StoresWithStock(p Pickup) []Location {
	var out []Location
	for _, loc := range p.Locations {
		if loc.QuantityOnHand > 0 || loc.HasInventory {
			out = append(out, loc)
		}
	}
	return out
}

// EvaluateAll evaluates a batch, preserving order.
func EvaluateAll(batch []Availability) []Decision {
	out := make([]Decision, len(batch))
	for i, a := range batch {
		out[i] = Evaluate(a)
	}
	return out
}

// BatchHasStock reports whether any record in the batch is available. Empty is false.
func BatchHasStock(batch []Availability) bool {
	for _, a := range batch {
		if Evaluate(a).Any() {
			return true
		}
	}
	return false
}

// CountAvailable returns how many records in the batch are available.
func CountAvailable(batch []Availability) int {
	n := 0
	for _, a := range batch {
		if Evaluate(a).Any() {
			n++
		}
	}
	return n
}
