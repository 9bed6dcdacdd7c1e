package handlers

import (
	"errors"
	"strings"

	"teampulse/internal/core/domain"
	"teampulse/internal/core/services"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain and service errors onto the response envelope.
// Unknown errors become a 500 with fallback as the message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	// 400
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidMissionType),
		errors.Is(err, domain.ErrInvalidMonthTag),
		errors.Is(err, domain.ErrDeletionNotConfirmed):
		return response.BadRequest(c, err.Error())

	// 401
	case errors.Is(err, domain.ErrInvalidLogin),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenExpired):
		return response.Unauthorized(c, err.Error())

	// 403
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, domain.ErrMonthClosingDisabled):
		return response.Forbidden(c, err.Error())

	// 404
	case errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrMissionNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrArchiveNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())

	// 409
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicateEntry),
		errors.Is(err, domain.ErrMonthClosed),
		errors.Is(err, domain.ErrMonthAlreadyClosed):
		return response.Conflict(c, err.Error())

	// 422
	case errors.Is(err, domain.ErrAgentInactive),
		errors.Is(err, domain.ErrMissionInactive),
		errors.Is(err, domain.ErrMissionNotApplicable),
		errors.Is(err, domain.ErrNoteRequired),
		errors.Is(err, services.ErrCannotDeactivateSelf),
		errors.Is(err, services.ErrCannotChangeOwnRole),
		errors.Is(err, services.ErrLastAdmin):
		return response.UnprocessableEntity(c, err.Error())

	default:
		return response.InternalServerError(c, fallback)
	}
}

// parseMonthQuery reads an optional YYYY-MM query parameter
func parseMonthQuery(c *fiber.Ctx, key string) (*domain.MonthTag, error) {
	raw := strings.Clone(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	month, err := domain.ParseMonthTag(raw)
	if err != nil {
		return nil, err
	}
	return &month, nil
}
