package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/metrics"
	"stock-tracker/internal/features/alerts/domain"
	"stock-tracker/internal/features/alerts/ports"
	inventory "stock-tracker/internal/features/inventory/domain"
	invports "stock-tracker/internal/features/inventory/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrReportsDisabled is returned by LastReport when no report repository is configured.
var ErrReportsDisabled = errors.New("run reports are disabled")

// CheckerOptions configures a CheckerService.
type CheckerOptions struct {
	// Set is the tracked SKUs, postal code and locations.
	Set inventory.TrackedSet
	// ProductURLBase prefixes the deep link of every item.
	ProductURLBase string
	// TestMode appends a synthetic available record to every batch.
	TestMode bool
	// Reports stores the last run report. Optional.
	Reports ports.RunReportRepository
	// Metrics receives check and fetch observations. Optional.
	Metrics *metrics.Metrics
}

// CheckerService runs one unattended stock check per call. It holds no state
// between runs.
type CheckerService struct {
	provider invports.InventoryProvider
	mailer   ports.Mailer
	opts     CheckerOptions
	logger   *zap.Logger
	now      func() time.Time
}

// NewCheckerService creates a new CheckerService. A nil mailer means mail
// credentials are missing: alerts are composed but not sent.
func NewCheckerService(provider invports.InventoryProvider, mailer ports.Mailer, opts CheckerOptions) *CheckerService {
	return &CheckerService{
		provider: provider,
		mailer:   mailer,
		opts:     opts,
		logger:   logger.Component("checker"),
		now:      time.Now,
	}
}

// Run fetches the tracked set, evaluates it and sends an alert when anything
// is available. Only fetch and parse failures are returned; a delivery failure
// is recorded in the report and logged.
func (s *CheckerService) Run(ctx context.Context, trigger domain.Trigger) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		StartedAt: s.now(),
		TestMode:  s.opts.TestMode,
	}
	log := s.logger.With(
		zap.String("run_id", report.RunID),
		zap.String("trigger", string(trigger)),
	)
	log.Info("Starting inventory check", zap.Strings("skus", s.opts.Set.SKUs))

	err := s.run(ctx, report, log)

	report.FinishedAt = s.now()
	if err != nil {
		report.Error = err.Error()
		log.Error("Inventory check failed", zap.Error(err))
	}
	s.opts.Metrics.ObserveCheck(string(trigger), err)
	s.saveReport(ctx, report, log)

	return report, err
}

func (s *CheckerService) run(ctx context.Context, report *domain.RunReport, log *zap.Logger) error {
	start := time.Now()
	records, err := s.provider.FetchAvailability(ctx, s.opts.Set)
	s.opts.Metrics.ObserveFetch("checker", time.Since(start), err)
	if err != nil {
		return err
	}

	if s.opts.TestMode {
		log.Warn("Test mode enabled, injecting synthetic record", zap.String("sku", domain.TestModeSKU))
		records = append(records, domain.SyntheticRecord())
	}
	report.Checked = len(records)

	for i, d := range inventory.EvaluateAll(records) {
		if d.Any() {
			report.AvailableSKUs = append(report.AvailableSKUs, records[i].SKU)
		}
	}
	report.Items = len(report.AvailableSKUs)
	s.opts.Metrics.SetAvailable(report.Items)

	msg, err := domain.Compose(records, s.opts.ProductURLBase)
	if err != nil {
		s.deliveryFailed(report, log, err)
		return nil
	}
	if msg == nil {
		log.Info("No stock found for any SKU", zap.Int("checked", report.Checked))
		return nil
	}

	log.Info("Stock found", zap.Strings("available", report.AvailableSKUs))

	if s.mailer == nil {
		log.Warn("Missing EMAIL_USER or EMAIL_PASS, skipping email")
		report.MailSkipped = true
		return nil
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.deliveryFailed(report, log, err)
		return nil
	}

	report.Sent = true
	s.opts.Metrics.AlertSent()
	log.Info("Stock alert sent", zap.String("subject", msg.Subject))
	return nil
}

func (s *CheckerService) deliveryFailed(report *domain.RunReport, log *zap.Logger, err error) {
	derr := &domain.DeliveryError{Err: err}
	report.DeliveryError = derr.Error()
	s.opts.Metrics.DeliveryFailed()
	log.Error("Failed to send stock alert", zap.Error(derr))
}

func (s *CheckerService) saveReport(ctx context.Context, report *domain.RunReport, log *zap.Logger) {
	if s.opts.Reports == nil {
		return
	}
	if err := s.opts.Reports.Save(ctx, report); err != nil {
		log.Warn("Failed to store run report", zap.Error(err))
	}
}

// LastReport returns the most recent run report, or nil when none is stored.
func (s *CheckerService) LastReport(ctx context.Context) (*domain.RunReport, error) {
	if s.opts.Reports == nil {
		return nil, ErrReportsDisabled
	}
	report, err := s.opts.Reports.Last(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get last report: %w", err)
	}
	return report, nil
}
