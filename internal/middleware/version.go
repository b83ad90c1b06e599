package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const currentAPIVersion = "1.0.0"

// APIVersion reads the X-Api-Version request header, normalizes short forms
// and makes the resolved version available to handlers and the response.
func APIVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Get("X-Api-Version", currentAPIVersion)
		switch requested {
		case "1", "1.0":
			requested = currentAPIVersion
		}

		c.Locals("apiVersion", requested)
		c.Set("X-Api-Version", requested)
		return c.Next()
	}
}
