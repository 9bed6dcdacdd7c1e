package handlers

import (
	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AgentHandler handles team profile endpoints
type AgentHandler struct {
	agentService *services.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *services.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// ListAgents lists agents
// @Summary List agents
// @Description List team agents ordered by name
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active agents" default(true)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /agents [get]
func (h *AgentHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.agentService.List(c.UserContext(), c.QueryBool("active", true))
	if err != nil {
		return respondError(c, err, "Failed to list agents")
	}

	return response.Success(c, "Agents retrieved successfully", fiber.Map{
		"agents": toAgentResponses(agents),
	})
}

// GetAgent gets one agent
// @Summary Get agent by ID
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agents/{id} [get]
func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	agent, err := h.agentService.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to get agent")
	}

	return response.Success(c, "Agent retrieved successfully", fiber.Map{
		"agent": toAgentResponse(agent),
	})
}

// CreateAgent creates an agent (Admin only)
// @Summary Create agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AgentInput true "Agent data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /agents [post]
func (h *AgentHandler) CreateAgent(c *fiber.Ctx) error {
	var input services.AgentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agent, err := h.agentService.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err, "Failed to create agent")
	}

	return response.Created(c, "Agent created successfully", fiber.Map{
		"agent": toAgentResponse(agent),
	})
}

// UpdateAgent updates an agent (Admin only)
// @Summary Update agent
// @Tags Agents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Param body body services.AgentInput true "Agent data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /agents/{id} [put]
func (h *AgentHandler) UpdateAgent(c *fiber.Ctx) error {
	var input services.AgentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	agent, err := h.agentService.Update(c.UserContext(), c.Params("id"), middleware.AgentID(c), &input)
	if err != nil {
		return respondError(c, err, "Failed to update agent")
	}

	return response.Success(c, "Agent updated successfully", fiber.Map{
		"agent": toAgentResponse(agent),
	})
}

// DeactivateAgent soft-disables an agent (Admin only)
// @Summary Deactivate agent
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /agents/{id} [delete]
func (h *AgentHandler) DeactivateAgent(c *fiber.Ctx) error {
	if err := h.agentService.Deactivate(c.UserContext(), c.Params("id"), middleware.AgentID(c)); err != nil {
		return respondError(c, err, "Failed to deactivate agent")
	}

	return response.Success(c, "Agent deactivated successfully", nil)
}

// UploadAvatar stores an avatar image (Admin only)
// @Summary Upload avatar
// @Description Upload a png, jpeg, webp or gif image and get its public URL
// @Tags Agents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agents/avatar [post]
func (h *AgentHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Avatar file is required")
	}

	f, err := file.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read avatar file")
	}
	defer f.Close()

	url, err := h.agentService.UploadAvatar(c.UserContext(), file.Header.Get("Content-Type"), file.Size, f)
	if err != nil {
		return respondError(c, err, "Failed to upload avatar")
	}

	return response.Created(c, "Avatar uploaded successfully", fiber.Map{
		"url": url,
	})
}
