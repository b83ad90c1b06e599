package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// RoomInput carries the fields accepted when creating a room.
type RoomInput struct {
	RoomName   string `json:"roomName" validate:"required,max=255"`
	Floor      string `json:"floor" validate:"required"`
	RoomType   string `json:"roomType" validate:"required"`
	AllottedTo string `json:"allottedTo" validate:"omitempty,max=255"`
}

// RoomUpdate carries the optional fields of a partial room update.
type RoomUpdate struct {
	RoomName   *string `json:"roomName" validate:"omitempty,max=255"`
	Floor      *string `json:"floor"`
	RoomType   *string `json:"roomType"`
	AllottedTo *string `json:"allottedTo" validate:"omitempty,max=255"`
}

// CreateRoom adds a room on an existing floor with an existing room type.
func CreateRoom(db *gorm.DB, actor types.Actor, in RoomInput) (*models.Room, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	norm := normalizeName(in.RoomName)
	if norm == "" {
		return nil, types.BadRequest("Room name is required")
	}

	floorID, err := ParseID(in.Floor)
	if err != nil {
		return nil, err
	}
	roomTypeID, err := ParseID(in.RoomType)
	if err != nil {
		return nil, err
	}
	floor, err := FindFloor(db, floorID)
	if err != nil {
		return nil, err
	}
	roomType, err := FindRoomType(db, roomTypeID)
	if err != nil {
		return nil, err
	}

	var existing models.Room
	err = db.Where("room_name_normalized = ? AND is_active = ?", norm, true).First(&existing).Error
	if err == nil {
		return nil, types.Conflict("Room already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "Fetching room")
	}

	room := models.Room{
		RoomName:           in.RoomName,
		RoomNameNormalized: norm,
		FloorID:            floor.ID,
		RoomTypeID:         roomType.ID,
		AllottedTo:         in.AllottedTo,
		IsActive:           true,
		CreatedBy:          actor.ID,
	}
	if err := db.Create(&room).Error; err != nil {
		return nil, storeErr(err, "Adding room")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntityRoom,
		EntityID:    room.ID,
		EntityName:  room.RoomName,
		Actor:       actor,
		Description: fmt.Sprintf("Room %q added on floor %q", room.RoomName, floor.FloorName),
	})
	return &room, nil
}

// ListRooms returns active rooms, optionally narrowed to one floor and to a
// substring of the room name or its allotted-to label.
func ListRooms(db *gorm.DB, floorID, search string) ([]models.Room, error) {
	q := db.Where("is_active = ?", true)
	if floorID != "" && floorID != FilterUnset {
		id, err := ParseID(floorID)
		if err != nil {
			return nil, err
		}
		q = q.Where("floor_id = ?", id)
	}
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		q = q.Where("room_name LIKE ? OR allotted_to LIKE ?", like, like)
	}
	var rooms []models.Room
	if err := q.Order("room_name").Find(&rooms).Error; err != nil {
		return nil, storeErr(err, "Fetching rooms")
	}
	return rooms, nil
}

// GetRoom returns one room by id.
func GetRoom(db *gorm.DB, id string) (*models.Room, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindRoom(db, id)
}

// UpdateRoom applies a partial update. Floor and room-type references are
// resolved before anything is written; the ledger diff records their names,
// not their ids.
func UpdateRoom(db *gorm.DB, actor types.Actor, id string, in RoomUpdate) (*models.Room, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.RoomName != nil && *in.RoomName != room.RoomName {
		norm := normalizeName(*in.RoomName)
		if norm == "" {
			return nil, types.BadRequest("Room name is required")
		}
		if norm != room.RoomNameNormalized {
			var other models.Room
			err := db.Where("room_name_normalized = ? AND is_active = ? AND id <> ?", norm, true, room.ID).
				First(&other).Error
			if err == nil {
				return nil, types.Conflict("Room already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, storeErr(err, "Fetching room")
			}
		}
		updates["room_name"] = *in.RoomName
		updates["room_name_normalized"] = norm
		changes["roomName"] = Change{From: room.RoomName, To: *in.RoomName}
		room.RoomName = *in.RoomName
		room.RoomNameNormalized = norm
	}

	if in.Floor != nil && *in.Floor != room.FloorID {
		floorID, err := ParseID(*in.Floor)
		if err != nil {
			return nil, err
		}
		newFloor, err := FindFloor(db, floorID)
		if err != nil {
			return nil, err
		}
		oldFloor, err := FindFloor(db, room.FloorID)
		if err != nil {
			return nil, err
		}
		updates["floor_id"] = newFloor.ID
		changes["floor"] = Change{From: oldFloor.FloorName, To: newFloor.FloorName}
		room.FloorID = newFloor.ID
	}

	if in.RoomType != nil && *in.RoomType != room.RoomTypeID {
		roomTypeID, err := ParseID(*in.RoomType)
		if err != nil {
			return nil, err
		}
		newRoomType, err := FindRoomType(db, roomTypeID)
		if err != nil {
			return nil, err
		}
		oldRoomType, err := FindRoomType(db, room.RoomTypeID)
		if err != nil {
			return nil, err
		}
		updates["room_type_id"] = newRoomType.ID
		changes["roomType"] = Change{From: oldRoomType.RoomTypeName, To: newRoomType.RoomTypeName}
		room.RoomTypeID = newRoomType.ID
	}

	if in.AllottedTo != nil && *in.AllottedTo != room.AllottedTo {
		updates["allotted_to"] = *in.AllottedTo
		changes["allottedTo"] = Change{From: room.AllottedTo, To: *in.AllottedTo}
		room.AllottedTo = *in.AllottedTo
	}

	if len(updates) == 0 {
		return room, nil
	}
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating room")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityRoom,
		EntityID:    room.ID,
		EntityName:  room.RoomName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Room %q edited", room.RoomName),
	})
	return room, nil
}

// DeleteRoom soft-deletes a room.
func DeleteRoom(db *gorm.DB, actor types.Actor, id string) (*models.Room, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, id)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, types.InvalidState("Room already deleted")
	}

	updates := map[string]interface{}{
		"is_active":            false,
		"room_name_normalized": retireName(room.RoomNameNormalized, room.ID),
	}
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting room")
	}
	room.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityRoom,
		EntityID:   room.ID,
		EntityName: room.RoomName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Room %q removed", room.RoomName),
	})
	return room, nil
}
