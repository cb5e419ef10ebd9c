package ports

import (
	"context"

	"stock-tracker/internal/features/poller/domain"
)

// PollerService defines the primary port for the dashboard poller.
type PollerService interface {
	Snapshot() domain.Snapshot
	Refresh(ctx context.Context) domain.Snapshot
	SetAutoRefresh(enabled bool) domain.Snapshot
	UpdateSettings(s domain.Settings) (domain.Snapshot, error)
	Report() domain.Report
}
