package handlers

import (
	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MissionHandler handles mission catalog endpoints
type MissionHandler struct {
	missionService *services.MissionService
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missionService *services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// ListMissions lists the catalog
// @Summary List missions
// @Description List active missions, positive first. Admins may include inactive ones.
// @Tags Missions
// @Produce json
// @Security BearerAuth
// @Param type query string false "positive or negative"
// @Param q query string false "Title search"
// @Param for_agent query string false "Only missions applicable to this agent"
// @Param include_inactive query bool false "Include inactive missions (admin)"
// @Success 200 {object} response.Response
// @Router /missions [get]
func (h *MissionHandler) ListMissions(c *fiber.Ctx) error {
	input := &services.ListMissionsInput{
		Type:            c.Query("type"),
		Query:           c.Query("q"),
		ForAgentID:      c.Query("for_agent"),
		IncludeInactive: c.QueryBool("include_inactive") && middleware.Role(c) == domain.RoleAdmin,
	}

	missions, err := h.missionService.List(c.UserContext(), input)
	if err != nil {
		return respondError(c, err, "Failed to list missions")
	}

	out := make([]MissionResponse, len(missions))
	for i := range missions {
		out[i] = toMissionResponse(&missions[i])
	}

	return response.Success(c, "Missions retrieved successfully", fiber.Map{
		"missions": out,
	})
}

// GetMission gets one mission
// @Summary Get mission by ID
// @Tags Missions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /missions/{id} [get]
func (h *MissionHandler) GetMission(c *fiber.Ctx) error {
	mission, err := h.missionService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to get mission")
	}

	return response.Success(c, "Mission retrieved successfully", fiber.Map{
		"mission": toMissionResponse(mission),
	})
}

// CreateMission creates a mission (Admin only)
// @Summary Create mission
// @Description Points are normalized to the sign of the type and limited to ±1000000 in magnitude
// @Tags Missions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MissionInput true "Mission data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /missions [post]
func (h *MissionHandler) CreateMission(c *fiber.Ctx) error {
	var input services.MissionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mission, err := h.missionService.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err, "Failed to create mission")
	}

	return response.Created(c, "Mission created successfully", fiber.Map{
		"mission": toMissionResponse(mission),
	})
}

// UpdateMission updates a mission (Admin only)
// @Summary Update mission
// @Description Existing ledger entries keep their snapshot
// @Tags Missions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mission ID"
// @Param body body services.MissionInput true "Mission data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /missions/{id} [put]
func (h *MissionHandler) UpdateMission(c *fiber.Ctx) error {
	var input services.MissionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mission, err := h.missionService.Update(c.UserContext(), c.Params("id"), &input)
	if err != nil {
		return respondError(c, err, "Failed to update mission")
	}

	return response.Success(c, "Mission updated successfully", fiber.Map{
		"mission": toMissionResponse(mission),
	})
}

// DeactivateMission hides a mission (Admin only)
// @Summary Deactivate mission
// @Tags Missions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Mission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /missions/{id} [delete]
func (h *MissionHandler) DeactivateMission(c *fiber.Ctx) error {
	if err := h.missionService.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Failed to deactivate mission")
	}

	return response.Success(c, "Mission deactivated successfully", nil)
}
