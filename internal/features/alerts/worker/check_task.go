package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/alerts/domain"
	"stock-tracker/internal/features/alerts/ports"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeInventoryCheck is the asynq task type for one unattended check.
const TypeInventoryCheck = "inventory:check"

// Queue is the asynq queue the check task is enqueued on.
const Queue = "default"

// NewCheckTask returns a check task. The task carries no payload: every run
// reads the tracked set from configuration.
func NewCheckTask() *asynq.Task {
	return asynq.NewTask(TypeInventoryCheck, nil,
		asynq.Queue(Queue),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
}

// Result is written to the task result on success.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type resultBody struct {
	Success bool   `json:"success"`
	Items   int    `json:"items"`
	RunID   string `json:"runId"`
}

// CheckTaskHandler runs the checker for queued tasks.
type CheckTaskHandler struct {
	service ports.CheckerService
	logger  *zap.Logger
}

// NewCheckTaskHandler creates a new CheckTaskHandler.
func NewCheckTaskHandler(service ports.CheckerService) *CheckTaskHandler {
	return &CheckTaskHandler{
		service: service,
		logger:  logger.Component("worker"),
	}
}

// ProcessTask implements asynq.Handler. Fetch and parse errors are returned so
// asynq applies its retry and archive policy.
func (h *CheckTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	report, err := h.service.Run(ctx, domain.TriggerQueue)
	if err != nil {
		return fmt.Errorf("inventory check: %w", err)
	}

	body, err := json.Marshal(resultBody{Success: true, Items: report.Items, RunID: report.RunID})
	if err != nil {
		return fmt.Errorf("failed to marshal result body: %w", err)
	}
	out, err := json.Marshal(Result{StatusCode: 200, Body: string(body)})
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if w := t.ResultWriter(); w != nil {
		if _, err := w.Write(out); err != nil {
			h.logger.Warn("Failed to write task result", zap.String("task_id", w.TaskID()), zap.Error(err))
		}
	}
	return nil
}

// NewServeMux registers the check handler on a new asynq mux.
func NewServeMux(handler *CheckTaskHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeInventoryCheck, handler)
	return mux
}
