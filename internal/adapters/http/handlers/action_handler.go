package handlers

import (
	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/pagination"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ActionHandler handles ledger endpoints
type ActionHandler struct {
	actionService *services.ActionService
}

// NewActionHandler creates a new action handler
func NewActionHandler(actionService *services.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// RegisterAction grants a mission to an agent
// @Summary Register action
// @Description Append a ledger entry copying the mission title and points. Admin only unless member actions are allowed.
// @Tags Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterActionInput true "Grant"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /actions [post]
func (h *ActionHandler) RegisterAction(c *fiber.Ctx) error {
	if err := h.actionService.AuthorizeRegistration(c.UserContext(), middleware.Role(c)); err != nil {
		return respondError(c, err, "Failed to register action")
	}

	var input services.RegisterActionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.actionService.Register(c.UserContext(), &input, middleware.AgentID(c))
	if err != nil {
		return respondError(c, err, "Failed to register action")
	}

	return response.Created(c, "Action registered successfully", fiber.Map{
		"entry": toLedgerEntryResponse(entry),
	})
}

// ListRecent lists the newest ledger entries
// @Summary Recent activity
// @Tags Actions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Items to return" default(10)
// @Param month query string false "Only this month (YYYY-MM)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /actions/recent [get]
func (h *ActionHandler) ListRecent(c *fiber.Ctx) error {
	month, err := parseMonthQuery(c, "month")
	if err != nil {
		return respondError(c, err, "Invalid month")
	}

	entries, err := h.actionService.ListRecent(c.UserContext(), pagination.Limit(c, pagination.DefaultLimit), month)
	if err != nil {
		return respondError(c, err, "Failed to list activity")
	}

	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = toLedgerEntryResponse(&entries[i])
	}

	return response.Success(c, "Activity retrieved successfully", fiber.Map{
		"entries": out,
	})
}

// DeleteAction permanently removes a ledger entry (Admin only)
// @Summary Delete action
// @Description Hard delete with no undo. Requires confirm=true.
// @Tags Actions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /actions/{id} [delete]
func (h *ActionHandler) DeleteAction(c *fiber.Ctx) error {
	confirm := services.DeleteConfirmation(c.QueryBool("confirm"))

	if err := h.actionService.DeleteEntry(c.UserContext(), c.Params("id"), confirm); err != nil {
		return respondError(c, err, "Failed to delete action")
	}

	return response.Success(c, "Action deleted permanently", nil)
}
