package utils

import (
	"time"

	"github.com/campuskit/assetdb/internal/types"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends data with a human-readable message
func SuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":        true,
		"message":   message,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponse sends a kind-tagged error response. Only APIError text
// reaches the client; anything else is already sanitized by AsAPIError.
func ErrorResponse(c *fiber.Ctx, err error) error {
	apiErr := types.AsAPIError(err)
	return c.Status(apiErr.Status()).JSON(fiber.Map{
		"status":    apiErr.Status(),
		"message":   apiErr.Message,
		"ok":        false,
		"type":      apiErr.Kind,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Type      string `json:"type,omitempty"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Ok        bool        `json:"ok"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}
