package handler

import (
	"crypto/subtle"
	"errors"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/alerts/domain"
	"stock-tracker/internal/features/alerts/ports"
	"stock-tracker/internal/features/alerts/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckHandler exposes the unattended check over HTTP.
type CheckHandler struct {
	service ports.CheckerService
	secret  string
}

// NewCheckHandler creates a new CheckHandler. An empty secret skips the secret
// comparison and leaves the check open to any caller.
func NewCheckHandler(service ports.CheckerService, secret string) *CheckHandler {
	return &CheckHandler{
		service: service,
		secret:  secret,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CheckResponse is returned by a successful check.
type CheckResponse struct {
	Success bool   `json:"success"`
	Items   int    `json:"items"`
	RunID   string `json:"runId"`
	Sent    bool   `json:"sent"`
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func (h *CheckHandler) authorized(provided string) bool {
	if h.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}

// Check godoc
// @Summary Run an inventory check
// @Description Fetches availability once and emails an alert when any SKU is in stock
// @Tags check
// @Produce json
// @Param secret query string false "Shared secret (required when CHECK_SECRET is set)"
// @Success 200 {object} CheckResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /check [get]
func (h *CheckHandler) Check(c *fiber.Ctx) error {
	if !h.authorized(c.Query("secret")) {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Message: "Forbidden",
			RayID:   rayID(c),
		})
	}

	report, err := h.service.Run(c.UserContext(), domain.TriggerHTTP)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(CheckResponse{
		Success: true,
		Items:   report.Items,
		RunID:   report.RunID,
		Sent:    report.Sent,
	})
}

// LastCheck godoc
// @Summary Get the last check report
// @Description Returns the report of the most recent unattended check
// @Tags check
// @Produce json
// @Param secret query string false "Shared secret (required when CHECK_SECRET is set)"
// @Success 200 {object} domain.RunReport
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /check/last [get]
func (h *CheckHandler) LastCheck(c *fiber.Ctx) error {
	if !h.authorized(c.Query("secret")) {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Message: "Forbidden",
			RayID:   rayID(c),
		})
	}

	report, err := h.service.LastReport(c.UserContext())
	if errors.Is(err, service.ErrReportsDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "run reports are disabled",
			RayID:   rayID(c),
		})
	}
	if err != nil {
		logger.Get().Error("Failed to get last check report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no check has run yet",
			RayID:   rayID(c),
		})
	}

	return c.JSON(report)
}
