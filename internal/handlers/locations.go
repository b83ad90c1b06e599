package handlers

import (
	"github.com/campuskit/assetdb/internal/middleware"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocationHandler handles floor, room-type and room routes
type LocationHandler struct {
	DB *gorm.DB
}

// CreateFloor handles POST /api/floors
// @Summary Add a floor
// @Tags Locations
// @Accept json
// @Produce json
// @Param body body services.FloorInput true "Floor"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /floors [post]
func (h *LocationHandler) CreateFloor(c *fiber.Ctx) error {
	var in services.FloorInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	floor, err := services.CreateFloor(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Floor added", floor)
}

// ListFloors handles GET /api/floors
// @Summary List active floors
// @Tags Locations
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /floors [get]
func (h *LocationHandler) ListFloors(c *fiber.Ctx) error {
	floors, err := services.ListFloors(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Floors fetched", floors)
}

// UpdateFloor handles PUT /api/floors/:id
// @Summary Edit a floor
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Floor ID"
// @Param body body services.FloorUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /floors/{id} [put]
func (h *LocationHandler) UpdateFloor(c *fiber.Ctx) error {
	var in services.FloorUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	floor, err := services.UpdateFloor(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Floor updated", floor)
}

// DeleteFloor handles DELETE /api/floors/:id
// @Summary Remove a floor
// @Tags Locations
// @Produce json
// @Param id path string true "Floor ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /floors/{id} [delete]
func (h *LocationHandler) DeleteFloor(c *fiber.Ctx) error {
	floor, err := services.DeleteFloor(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Floor removed", floor)
}

// CreateRoomType handles POST /api/room-types
// @Summary Add a room type
// @Tags Locations
// @Accept json
// @Produce json
// @Param body body services.RoomTypeInput true "Room type"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /room-types [post]
func (h *LocationHandler) CreateRoomType(c *fiber.Ctx) error {
	var in services.RoomTypeInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	roomType, err := services.CreateRoomType(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Room type added", roomType)
}

// ListRoomTypes handles GET /api/room-types
// @Summary List active room types
// @Tags Locations
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /room-types [get]
func (h *LocationHandler) ListRoomTypes(c *fiber.Ctx) error {
	roomTypes, err := services.ListRoomTypes(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room types fetched", roomTypes)
}

// UpdateRoomType handles PUT /api/room-types/:id
// @Summary Edit a room type
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Room type ID"
// @Param body body services.RoomTypeUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /room-types/{id} [put]
func (h *LocationHandler) UpdateRoomType(c *fiber.Ctx) error {
	var in services.RoomTypeUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	roomType, err := services.UpdateRoomType(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room type updated", roomType)
}

// DeleteRoomType handles DELETE /api/room-types/:id
// @Summary Remove a room type
// @Tags Locations
// @Produce json
// @Param id path string true "Room type ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /room-types/{id} [delete]
func (h *LocationHandler) DeleteRoomType(c *fiber.Ctx) error {
	roomType, err := services.DeleteRoomType(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room type removed", roomType)
}

// CreateRoom handles POST /api/rooms
// @Summary Add a room
// @Tags Locations
// @Accept json
// @Produce json
// @Param body body services.RoomInput true "Room"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /rooms [post]
func (h *LocationHandler) CreateRoom(c *fiber.Ctx) error {
	var in services.RoomInput
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	room, err := services.CreateRoom(h.DB, middleware.ActorFromContext(c), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Room added", room)
}

// ListRooms handles GET /api/rooms?floor=...&search=...
// @Summary List active rooms
// @Tags Locations
// @Produce json
// @Param floor query string false "Narrow to one floor"
// @Param search query string false "Room name or allotted-to substring"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /rooms [get]
func (h *LocationHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := services.ListRooms(h.DB, c.Query("floor"), c.Query("search"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Rooms fetched", rooms)
}

// UpdateRoom handles PUT /api/rooms/:id
// @Summary Edit a room
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param body body services.RoomUpdate true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /rooms/{id} [put]
func (h *LocationHandler) UpdateRoom(c *fiber.Ctx) error {
	var in services.RoomUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.ErrorResponse(c, err)
	}
	room, err := services.UpdateRoom(h.DB, middleware.ActorFromContext(c), c.Params("id"), in)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room updated", room)
}

// DeleteRoom handles DELETE /api/rooms/:id
// @Summary Remove a room
// @Tags Locations
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *LocationHandler) DeleteRoom(c *fiber.Ctx) error {
	room, err := services.DeleteRoom(h.DB, middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Room removed", room)
}
