package services

import (
	"errors"
	"fmt"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// RoomTypeInput carries the fields accepted when creating a room type.
type RoomTypeInput struct {
	RoomTypeName string `json:"roomTypeName" validate:"required,max=255"`
}

// RoomTypeUpdate carries the optional fields of a partial room-type update.
type RoomTypeUpdate struct {
	RoomTypeName *string `json:"roomTypeName" validate:"omitempty,max=255"`
}

// CreateRoomType adds a room type with a globally unique normalized name.
func CreateRoomType(db *gorm.DB, actor types.Actor, in RoomTypeInput) (*models.RoomType, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	norm := normalizeName(in.RoomTypeName)
	if norm == "" {
		return nil, types.BadRequest("Room type name is required")
	}

	var existing models.RoomType
	err := db.Where("room_type_name_normalized = ? AND is_active = ?", norm, true).First(&existing).Error
	if err == nil {
		return nil, types.Conflict("Room type already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "Fetching room type")
	}

	roomType := models.RoomType{
		RoomTypeName:           in.RoomTypeName,
		RoomTypeNameNormalized: norm,
		IsActive:               true,
		CreatedBy:              actor.ID,
	}
	if err := db.Create(&roomType).Error; err != nil {
		return nil, storeErr(err, "Adding room type")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntityRoomType,
		EntityID:    roomType.ID,
		EntityName:  roomType.RoomTypeName,
		Actor:       actor,
		Description: fmt.Sprintf("Room type %q added", roomType.RoomTypeName),
	})
	return &roomType, nil
}

// ListRoomTypes returns all active room types in display-name order.
func ListRoomTypes(db *gorm.DB) ([]models.RoomType, error) {
	var roomTypes []models.RoomType
	err := db.Where("is_active = ?", true).Order("room_type_name").Find(&roomTypes).Error
	if err != nil {
		return nil, storeErr(err, "Fetching room types")
	}
	return roomTypes, nil
}

// GetRoomType returns one room type by id.
func GetRoomType(db *gorm.DB, id string) (*models.RoomType, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindRoomType(db, id)
}

// UpdateRoomType applies a partial update.
func UpdateRoomType(db *gorm.DB, actor types.Actor, id string, in RoomTypeUpdate) (*models.RoomType, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	roomType, err := FindRoomType(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.RoomTypeName != nil && *in.RoomTypeName != roomType.RoomTypeName {
		norm := normalizeName(*in.RoomTypeName)
		if norm == "" {
			return nil, types.BadRequest("Room type name is required")
		}
		if norm != roomType.RoomTypeNameNormalized {
			var other models.RoomType
			err := db.Where("room_type_name_normalized = ? AND is_active = ? AND id <> ?", norm, true, roomType.ID).
				First(&other).Error
			if err == nil {
				return nil, types.Conflict("Room type already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, storeErr(err, "Fetching room type")
			}
		}
		updates["room_type_name"] = *in.RoomTypeName
		updates["room_type_name_normalized"] = norm
		changes["roomTypeName"] = Change{From: roomType.RoomTypeName, To: *in.RoomTypeName}
		roomType.RoomTypeName = *in.RoomTypeName
		roomType.RoomTypeNameNormalized = norm
	}

	if len(updates) == 0 {
		return roomType, nil
	}
	if err := db.Model(&models.RoomType{}).Where("id = ?", roomType.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating room type")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityRoomType,
		EntityID:    roomType.ID,
		EntityName:  roomType.RoomTypeName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Room type %q edited", roomType.RoomTypeName),
	})
	return roomType, nil
}

// DeleteRoomType soft-deletes a room type.
func DeleteRoomType(db *gorm.DB, actor types.Actor, id string) (*models.RoomType, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	roomType, err := FindRoomType(db, id)
	if err != nil {
		return nil, err
	}
	if !roomType.IsActive {
		return nil, types.InvalidState("Room type already deleted")
	}

	updates := map[string]interface{}{
		"is_active":                 false,
		"room_type_name_normalized": retireName(roomType.RoomTypeNameNormalized, roomType.ID),
	}
	if err := db.Model(&models.RoomType{}).Where("id = ?", roomType.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting room type")
	}
	roomType.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityRoomType,
		EntityID:   roomType.ID,
		EntityName: roomType.RoomTypeName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Room type %q removed", roomType.RoomTypeName),
	})
	return roomType, nil
}
