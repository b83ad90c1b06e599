package handlers

import (
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportHandler handles dashboard and rollup routes
type ReportHandler struct {
	DB *gorm.DB
}

// Stats handles GET /api/reports/stats
// @Summary Inventory dashboard summary
// @Description Total items, status and source distributions, and the end-of-last-month snapshot
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /reports/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetInventoryStats(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Stats fetched", stats)
}

// CategoryRollup handles GET /api/reports/categories
// @Summary Active item counts per category
// @Tags Reports
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *ReportHandler) CategoryRollup(c *fiber.Ctx) error {
	rollup, err := services.GetCategoryRollup(h.DB, pageParam(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category rollup fetched", rollup)
}

// RoomRollup handles GET /api/reports/rooms
// @Summary Active item counts per room
// @Tags Reports
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /reports/rooms [get]
func (h *ReportHandler) RoomRollup(c *fiber.Ctx) error {
	rollup, err := services.GetRoomRollup(h.DB, pageParam(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room rollup fetched", rollup)
}

// CategoryStatusStats handles GET /api/reports/categories/:id/status
// @Summary Status distribution of one category's active items
// @Tags Reports
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /reports/categories/{id}/status [get]
func (h *ReportHandler) CategoryStatusStats(c *fiber.Ctx) error {
	stats, err := services.GetCategoryStatusStats(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category status stats fetched", stats)
}

// CategoryAcquisitionStats handles GET /api/reports/categories/:id/acquisition
// @Summary Acquisition-source distribution of a category's active items
// @Description Pass "0" as the id to cover every category
// @Tags Reports
// @Produce json
// @Param id path string true "Category ID, or 0 for all"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /reports/categories/{id}/acquisition [get]
func (h *ReportHandler) CategoryAcquisitionStats(c *fiber.Ctx) error {
	stats, err := services.GetCategoryAcquisitionStats(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Acquisition stats fetched", stats)
}

// RoomStatusStats handles GET /api/reports/rooms/:id/status
// @Summary Status distribution of one room's active items
// @Tags Reports
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /reports/rooms/{id}/status [get]
func (h *ReportHandler) RoomStatusStats(c *fiber.Ctx) error {
	stats, err := services.GetRoomStatusStats(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room status stats fetched", stats)
}

// RoomItemDetails handles GET /api/reports/rooms/:id/details
// @Summary One room's active items grouped by name and model
// @Tags Reports
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /reports/rooms/{id}/details [get]
func (h *ReportHandler) RoomItemDetails(c *fiber.Ctx) error {
	details, err := services.GetRoomItemDetails(h.DB, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room item details fetched", details)
}

// CommonItems handles GET /api/reports/common-items
// @Summary Item groupings by name, category and model with status sub-counts
// @Tags Reports
// @Produce json
// @Param category query string false "Category ID filter"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /reports/common-items [get]
func (h *ReportHandler) CommonItems(c *fiber.Ctx) error {
	groups, err := services.GetCommonItems(h.DB, c.Query("category"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Common items fetched", groups)
}
