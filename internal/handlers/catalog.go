package handlers

import (
	"github.com/campuskit/assetdb/internal/middleware"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogHandler handles category and sub-category routes
type CatalogHandler struct {
	DB *gorm.DB
}

// CreateCategory handles POST /api/categories
// @Summary Add a category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	category, err := services.CreateCategory(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Category added", category)
}

// ListCategories handles GET /api/categories
// @Summary List active categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategories(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Categories fetched", categories)
}

// GetCategory handles GET /api/categories/:id
// @Summary Get one category
// @Tags Catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := services.GetCategory(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category fetched", category)
}

// UpdateCategory handles PUT /api/categories/:id
// @Summary Edit a category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param body body services.CategoryUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in services.CategoryUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	category, err := services.UpdateCategory(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category updated", category)
}

// DeleteCategory handles DELETE /api/categories/:id
// @Summary Remove a category
// @Tags Catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	category, err := services.DeleteCategory(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category removed", category)
}

// CreateSubCategory handles POST /api/sub-categories
// @Summary Add a sub-category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.SubCategoryInput true "Sub-category"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /sub-categories [post]
func (h *CatalogHandler) CreateSubCategory(c *fiber.Ctx) error {
	var in services.SubCategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	subCategory, err := services.CreateSubCategory(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Sub-category added", subCategory)
}

// ListSubCategories handles GET /api/sub-categories?category=...
// @Summary List active sub-categories
// @Tags Catalog
// @Produce json
// @Param category query string false "Narrow to one category"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /sub-categories [get]
func (h *CatalogHandler) ListSubCategories(c *fiber.Ctx) error {
	subCategories, err := services.ListSubCategories(h.DB, c.Query("category"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Sub-categories fetched", subCategories)
}

// GetSubCategory handles GET /api/sub-categories/:id
// @Summary Get one sub-category
// @Tags Catalog
// @Produce json
// @Param id path string true "Sub-category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /sub-categories/{id} [get]
func (h *CatalogHandler) GetSubCategory(c *fiber.Ctx) error {
	subCategory, err := services.GetSubCategory(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Sub-category fetched", subCategory)
}

// UpdateSubCategory handles PUT /api/sub-categories/:id
// @Summary Edit a sub-category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Sub-category ID"
// @Param body body services.SubCategoryUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /sub-categories/{id} [put]
func (h *CatalogHandler) UpdateSubCategory(c *fiber.Ctx) error {
	var in services.SubCategoryUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	subCategory, err := services.UpdateSubCategory(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Sub-category updated", subCategory)
}

// DeleteSubCategory handles DELETE /api/sub-categories/:id
// @Summary Remove a sub-category
// @Tags Catalog
// @Produce json
// @Param id path string true "Sub-category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /sub-categories/{id} [delete]
func (h *CatalogHandler) DeleteSubCategory(c *fiber.Ctx) error {
	subCategory, err := services.DeleteSubCategory(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Sub-category removed", subCategory)
}
