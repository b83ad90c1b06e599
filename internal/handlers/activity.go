package handlers

import (
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActivityHandler handles audit-trail routes
type ActivityHandler struct {
	DB *gorm.DB
}

// Query handles GET /api/activity
// @Summary Query the activity ledger
// @Description Paginated, newest-first; filterable by entity type/id and date range
// @Tags Activity
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param entityType query string false "Entity type filter"
// @Param entityId query string false "Entity ID filter"
// @Param startDate query string false "Recorded on or after (YYYY-MM-DD)"
// @Param endDate query string false "Recorded on or before (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /activity [get]
func (h *ActivityHandler) Query(c *fiber.Ctx) error {
	filter := services.LogFilter{
		EntityType: c.Query("entityType"),
		EntityID:   c.Query("entityId"),
		StartDate:  dateParam(c, "startDate"),
		EndDate:    dateParam(c, "endDate"),
	}
	page, err := services.QueryLogs(h.DB, filter, pageParam(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Logs fetched", page)
}

// Recent handles GET /api/activity/recent
// @Summary Most recent ledger records
// @Tags Activity
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /activity/recent [get]
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	logs, err := services.RecentLogs(h.DB, 5)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Recent logs fetched", logs)
}

// Entity handles GET /api/activity/:entityType/:entityId
// @Summary Full ledger history for one entity
// @Tags Activity
// @Produce json
// @Param entityType path string true "Entity type"
// @Param entityId path string true "Entity ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /activity/{entityType}/{entityId} [get]
func (h *ActivityHandler) Entity(c *fiber.Ctx) error {
	logs, err := services.EntityLogs(h.DB, c.Params("entityType"), c.Params("entityId"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Entity logs fetched", logs)
}
