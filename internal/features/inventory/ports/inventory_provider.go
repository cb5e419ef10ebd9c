package ports

import (
	"context"

	"stock-tracker/internal/features/inventory/domain"
)

// InventoryProvider fetches one batch of availability records.
// This is a Secondary Port (Driven Port).
type InventoryProvider interface {
	// FetchAvailability returns the records for the tracked set, or an empty batch
	// when the set has no SKUs. It never retries.
	FetchAvailability(ctx context.Context, set domain.TrackedSet) ([]domain.Availability, error)
}
