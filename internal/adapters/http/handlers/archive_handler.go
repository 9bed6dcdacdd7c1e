package handlers

import (
	"strings"

	"teampulse/internal/adapters/http/middleware"
	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ArchiveHandler handles closed month endpoints
type ArchiveHandler struct {
	archiveService *services.ArchiveService
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archiveService *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

// ListArchives lists closed months
// @Summary List archives
// @Tags Archives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /archives [get]
func (h *ArchiveHandler) ListArchives(c *fiber.Ctx) error {
	archives, err := h.archiveService.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to list archives")
	}

	out := make([]ArchiveResponse, len(archives))
	for i := range archives {
		out[i] = toArchiveResponse(&archives[i])
	}

	return response.Success(c, "Archives retrieved successfully", fiber.Map{
		"archives":        out,
		"closing_enabled": h.archiveService.Enabled(),
	})
}

// GetArchive returns one closed month
// @Summary Get archive
// @Tags Archives
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} response.Response{data=ArchiveDetailResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /archives/{month} [get]
func (h *ArchiveHandler) GetArchive(c *fiber.Ctx) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return respondError(c, err, "Invalid month")
	}

	detail, err := h.archiveService.Get(c.UserContext(), month)
	if err != nil {
		return respondError(c, err, "Failed to get archive")
	}

	return response.Success(c, "Archive retrieved successfully", toArchiveDetailResponse(detail))
}

// CloseMonth freezes a month (Admin only)
// @Summary Close month
// @Description Rank every active agent and archive the result. A month can be closed once.
// @Tags Archives
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 201 {object} response.Response{data=ArchiveDetailResponse}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /archives/{month}/close [post]
func (h *ArchiveHandler) CloseMonth(c *fiber.Ctx) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return respondError(c, err, "Invalid month")
	}

	detail, err := h.archiveService.CloseMonth(c.UserContext(), month, middleware.AgentID(c))
	if err != nil {
		return respondError(c, err, "Failed to close month")
	}

	return response.Created(c, "Month closed successfully", toArchiveDetailResponse(detail))
}

// parseMonthParam copies the path value, fiber reuses its buffer after the handler returns
func parseMonthParam(c *fiber.Ctx) (domain.MonthTag, error) {
	return domain.ParseMonthTag(strings.Clone(c.Params("month")))
}
