package handler

import (
	"errors"
	"fmt"
	"strings"

	"stock-tracker/internal/features/poller/domain"
	"stock-tracker/internal/features/poller/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PollerHandler handles HTTP requests for the dashboard poller.
type PollerHandler struct {
	service  ports.PollerService
	validate *validator.Validate
}

// NewPollerHandler creates a new PollerHandler.
func NewPollerHandler(service ports.PollerService) *PollerHandler {
	return &PollerHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
	// Fields lists per-field validation failures.
	Fields []string `json:"fields,omitempty"`
}

// AutoRefreshRequest toggles the countdown.
type AutoRefreshRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// SettingsRequest replaces the poller settings.
type SettingsRequest struct {
	SKUs            []string `json:"skus" validate:"required,min=1,max=50,dive,required,max=32"`
	PostalCode      string   `json:"postalCode" validate:"required,max=10"`
	RefreshInterval int      `json:"refreshInterval" validate:"required,min=5,max=86400"`
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func (h *PollerHandler) badRequest(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{Message: "Invalid request body", RayID: rayID(c)}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Message = "Validation failed"
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	} else if errors.Is(err, domain.ErrInvalidSettings) {
		resp.Message = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

// GetState godoc
// @Summary Get the poller state
// @Description Returns the fetch state, countdown and inventory cards
// @Tags poller
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /poller [get]
func (h *PollerHandler) GetState(c *fiber.Ctx) error {
	return c.JSON(h.service.Snapshot())
}

// Refresh godoc
// @Summary Refresh now
// @Description Fetches availability immediately and returns the new state
// @Tags poller
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /poller/refresh [post]
func (h *PollerHandler) Refresh(c *fiber.Ctx) error {
	return c.JSON(h.service.Refresh(c.UserContext()))
}

// SetAutoRefresh godoc
// @Summary Toggle auto-refresh
// @Description Starts or pauses the refresh countdown
// @Tags poller
// @Accept json
// @Produce json
// @Param body body AutoRefreshRequest true "Auto-refresh flag"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /poller/auto-refresh [put]
func (h *PollerHandler) SetAutoRefresh(c *fiber.Ctx) error {
	var req AutoRefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return h.badRequest(c, err)
	}

	return c.JSON(h.service.SetAutoRefresh(*req.Enabled))
}

// UpdateSettings godoc
// @Summary Update poller settings
// @Description Replaces the tracked SKUs, postal code and refresh interval
// @Tags poller
// @Accept json
// @Produce json
// @Param body body SettingsRequest true "Settings"
// @Success 200 {object} domain.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /poller/settings [put]
func (h *PollerHandler) UpdateSettings(c *fiber.Ctx) error {
	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}
	req.PostalCode = strings.TrimSpace(req.PostalCode)
	if err := h.validate.Struct(req); err != nil {
		return h.badRequest(c, err)
	}

	snap, err := h.service.UpdateSettings(domain.Settings{
		SKUs:            req.SKUs,
		PostalCode:      req.PostalCode,
		RefreshInterval: req.RefreshInterval,
	})
	if err != nil {
		return h.badRequest(c, err)
	}
	return c.JSON(snap)
}

// GetReport godoc
// @Summary Get the email report
// @Description Returns a plain-text report of the current result and a mailto link
// @Tags poller
// @Produce json
// @Success 200 {object} domain.Report
// @Router /poller/report [get]
func (h *PollerHandler) GetReport(c *fiber.Ctx) error {
	return c.JSON(h.service.Report())
}
