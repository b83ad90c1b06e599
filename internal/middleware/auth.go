package middleware

import (
	"strings"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ActorKey is the Locals key the authenticated actor is stored under.
const ActorKey = "actor"

// AuthUser validates the bearer token and stores the actor in context
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := authenticate(c, cfg)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}
		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

// AuthAdmin validates the bearer token and requires the admin role
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := authenticate(c, cfg)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}
		if !actor.IsAdmin() {
			return utils.ErrorResponse(c, types.Authorization("Admin access required"))
		}
		c.Locals(ActorKey, actor)
		return c.Next()
	}
}

// authenticate extracts and validates the Authorization header
func authenticate(c *fiber.Ctx, cfg *config.Config) (types.Actor, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return types.Actor{}, types.Authorization("Authorization header not found")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return types.Actor{}, types.Authorization("Bearer token expected")
	}

	claims, err := services.ParseAccessToken(cfg, tokenString)
	if err != nil {
		return types.Actor{}, err
	}
	return types.Actor{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// ActorFromContext returns the actor stored by AuthUser/AuthAdmin.
func ActorFromContext(c *fiber.Ctx) types.Actor {
	if actor, ok := c.Locals(ActorKey).(types.Actor); ok {
		return actor
	}
	return types.Actor{}
}
