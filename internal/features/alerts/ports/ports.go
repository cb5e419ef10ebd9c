package ports

import (
	"context"

	"stock-tracker/internal/features/alerts/domain"
)

// CheckerService defines the primary port for unattended stock checks.
type CheckerService interface {
	Run(ctx context.Context, trigger domain.Trigger) (*domain.RunReport, error)
	LastReport(ctx context.Context) (*domain.RunReport, error)
}

// Mailer delivers a composed stock alert.
type Mailer interface {
	Send(ctx context.Context, msg *domain.Message) error
}

// RunReportRepository keeps the most recent run report.
type RunReportRepository interface {
	Save(ctx context.Context, report *domain.RunReport) error
	Last(ctx context.Context) (*domain.RunReport, error)
}
