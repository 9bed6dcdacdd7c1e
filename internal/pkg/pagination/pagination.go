package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultLimit is the default number of items returned by list endpoints
const DefaultLimit = 10

// MaxLimit is the maximum number of items per request
const MaxLimit = 100

// Limit reads the "limit" query parameter, clamped to 1..MaxLimit.
// Missing or malformed values fall back to def.
func Limit(c *fiber.Ctx, def int) int {
	return Clamp(c.Query("limit"), def)
}

// Clamp parses raw as a limit with the same rules as Limit
func Clamp(raw string, def int) int {
	if def < 1 || def > MaxLimit {
		def = DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
