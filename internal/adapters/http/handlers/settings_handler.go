package handlers

import (
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles dashboard settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the current rules
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=SettingsResponse}
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to get settings")
	}

	return response.Success(c, "Settings retrieved successfully", toSettingsResponse(settings))
}

// UpdateSettings changes the rules (Admin only)
// @Summary Update settings
// @Description Only the fields present in the body change
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateSettingsInput true "Settings"
// @Success 200 {object} response.Response{data=SettingsResponse}
// @Failure 400 {object} response.Response
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err, "Failed to update settings")
	}

	return response.Success(c, "Settings updated successfully", toSettingsResponse(settings))
}
