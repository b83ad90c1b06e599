package handlers

import (
	"github.com/campuskit/assetdb/internal/middleware"
	"github.com/campuskit/assetdb/internal/registry"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ItemHandler handles item routes
type ItemHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/items
// @Summary Add one or more items
// @Description Creates item_create_count identical items, each with its own serial number
// @Tags Items
// @Accept json
// @Produce json
// @Param body body services.ItemCreateInput true "Item details"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in services.ItemCreateInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	items, err := services.CreateItems(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Items added", items)
}

// List handles GET /api/items
// @Summary List items
// @Description Paginated, filtered, denormalized item listing, most recently updated first
// @Tags Items
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param category query string false "Category ID filter"
// @Param subCategory query string false "Sub-category ID filter"
// @Param floor query string false "Floor ID filter"
// @Param room query string false "Room ID filter"
// @Param status query string false "Status ID filter"
// @Param source query string false "Source ID filter"
// @Param search query string false "Name or serial substring"
// @Param startDate query string false "Acquired on or after (YYYY-MM-DD)"
// @Param endDate query string false "Acquired on or before (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page, err := services.ListItems(h.DB, itemFilterFromQuery(c), pageParam(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Items fetched", page)
}

// Get handles GET /api/items/:id
// @Summary Get one item
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := services.GetItem(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item fetched", item)
}

// Similar handles GET /api/items/:id/similar
// @Summary List items sharing name, category and model
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id}/similar [get]
func (h *ItemHandler) Similar(c *fiber.Ctx) error {
	items, err := services.GetSimilarItems(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Similar items fetched", items)
}

// Instances handles GET /api/items/instances
// @Summary List the individual items behind a room's name+model grouping
// @Tags Items
// @Produce json
// @Param name query string true "Item name"
// @Param model query string false "Model number or make"
// @Param room query string true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/instances [get]
func (h *ItemHandler) Instances(c *fiber.Ctx) error {
	items, err := services.GetItemInstancesInRoom(h.DB, c.Query("name"), c.Query("model"), c.Query("room"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item instances fetched", items)
}

// Update handles PUT /api/items/:id
// @Summary Edit an item's descriptive fields
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param body body services.ItemUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in services.ItemUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	item, err := services.UpdateItemDetails(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item updated", item)
}

// Move handles PUT /api/items/:id/move
// @Summary Move an item to another room
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id}/move [put]
func (h *ItemHandler) Move(c *fiber.Ctx) error {
	var in struct {
		Room string `json:"room" validate:"required"`
	}
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	item, err := services.MoveItem(h.DB, middleware.ActorFromContext(c), c.Params("id"), in.Room)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item moved", item)
}

// ChangeStatus handles PUT /api/items/:id/status
// @Summary Change an item's status
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id}/status [put]
func (h *ItemHandler) ChangeStatus(c *fiber.Ctx) error {
	var in struct {
		StatusID string `json:"itemStatusId" validate:"required"`
	}
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	item, err := services.ChangeItemStatus(h.DB, middleware.ActorFromContext(c), c.Params("id"), in.StatusID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item status changed", item)
}

// MoveSubCategory handles PUT /api/items/:id/sub-category
// @Summary Move an item to another sub-category
// @Description Mints a new serial on the target sub-category, preserving the year prefix
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id}/sub-category [put]
func (h *ItemHandler) MoveSubCategory(c *fiber.Ctx) error {
	var in struct {
		SubCategory string `json:"subCategory" validate:"required"`
	}
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	item, err := services.MoveItemSubCategory(h.DB, middleware.ActorFromContext(c), c.Params("id"), in.SubCategory)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item sub-category changed", item)
}

// Delete handles DELETE /api/items/:id
// @Summary Remove an item
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	item, err := services.DeleteItem(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item removed", item)
}

// BulkDelete handles POST /api/items/bulk/delete
// @Summary Remove a list of items
// @Tags Items
// @Accept json
// @Produce json
// @Param body body services.BulkItemIDs true "Item IDs"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/bulk/delete [post]
func (h *ItemHandler) BulkDelete(c *fiber.Ctx) error {
	var in services.BulkItemIDs
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	result, err := services.BulkDeleteItems(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Items removed", result)
}

// BulkMove handles POST /api/items/bulk/move
// @Summary Move a list of items to one room
// @Tags Items
// @Accept json
// @Produce json
// @Param body body services.BulkMoveInput true "Item IDs and target room"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/bulk/move [post]
func (h *ItemHandler) BulkMove(c *fiber.Ctx) error {
	var in services.BulkMoveInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	result, err := services.BulkMoveItems(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Items moved", result)
}

// BulkStatus handles POST /api/items/bulk/status
// @Summary Change status on a list of items
// @Tags Items
// @Accept json
// @Produce json
// @Param body body services.BulkStatusInput true "Item IDs and target status"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /items/bulk/status [post]
func (h *ItemHandler) BulkStatus(c *fiber.Ctx) error {
	var in services.BulkStatusInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	result, err := services.BulkChangeItemStatus(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Item statuses changed", result)
}

// Export handles GET /api/items/export
// @Summary Export the filtered item listing as CSV
// @Tags Items
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	data, filename, err := services.ExportItemsCSV(h.DB, itemFilterFromQuery(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Sources handles GET /api/items/sources
// @Summary List the fixed acquisition sources
// @Tags Items
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /items/sources [get]
func (h *ItemHandler) Sources(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, "Sources fetched", registry.ItemSources)
}

// Statuses handles GET /api/items/statuses
// @Summary List the fixed item statuses
// @Tags Items
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /items/statuses [get]
func (h *ItemHandler) Statuses(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, "Statuses fetched", registry.ItemStatuses)
}
