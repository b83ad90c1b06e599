package handlers

import (
	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/middleware"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles authentication and account routes
type UserHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Register handles POST /api/auth/register
// @Summary Register an operator account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Account details"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	user, err := services.RegisterUser(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered successfully", user)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	user, tokens, err := services.Login(h.DB, h.Cfg, in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Rotate a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/refresh [post]
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	var in struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	tokens, err := services.RefreshTokens(h.DB, h.Cfg, in.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Tokens refreshed", tokens)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := services.Logout(h.DB, middleware.ActorFromContext(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// ChangePassword handles PUT /api/auth/password
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.PasswordChange true "Password rotation"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in services.PasswordChange
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	if err := services.ChangePassword(h.DB, middleware.ActorFromContext(c), in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Password changed", nil)
}

// List handles GET /api/users
// @Summary List operator accounts
// @Tags Users
// @Produce json
// @Param search query string false "Username substring"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB, middleware.ActorFromContext(c), c.Query("search"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Users fetched", users)
}

// Me handles GET /api/auth/me
// @Summary Fetch the account behind the presented token
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := services.CurrentUser(h.DB, middleware.ActorFromContext(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User fetched", user)
}

// Update handles PUT /api/users/:id
// @Summary Edit a user profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body services.UserUpdate true "Profile fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in services.UserUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	user, err := services.UpdateUser(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User updated", user)
}

// Delete handles DELETE /api/users/:id
// @Summary Remove an operator account
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	user, err := services.DeleteUser(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User removed", user)
}
