package services

import (
	"errors"
	"fmt"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// FloorInput carries the fields accepted when creating a floor.
type FloorInput struct {
	FloorName string `json:"floorName" validate:"required,max=255"`
}

// FloorUpdate carries the optional fields of a partial floor update.
type FloorUpdate struct {
	FloorName *string `json:"floorName" validate:"omitempty,max=255"`
}

// CreateFloor adds a floor with a globally unique normalized name.
func CreateFloor(db *gorm.DB, actor types.Actor, in FloorInput) (*models.Floor, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	norm := normalizeName(in.FloorName)
	if norm == "" {
		return nil, types.BadRequest("Floor name is required")
	}

	var existing models.Floor
	err := db.Where("floor_name_normalized = ? AND is_active = ?", norm, true).First(&existing).Error
	if err == nil {
		return nil, types.Conflict("Floor already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "Fetching floor")
	}

	floor := models.Floor{
		FloorName:           in.FloorName,
		FloorNameNormalized: norm,
		IsActive:            true,
		CreatedBy:           actor.ID,
	}
	if err := db.Create(&floor).Error; err != nil {
		return nil, storeErr(err, "Adding floor")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntityFloor,
		EntityID:    floor.ID,
		EntityName:  floor.FloorName,
		Actor:       actor,
		Description: fmt.Sprintf("Floor %q added", floor.FloorName),
	})
	return &floor, nil
}

// ListFloors returns all active floors in display-name order.
func ListFloors(db *gorm.DB) ([]models.Floor, error) {
	var floors []models.Floor
	err := db.Where("is_active = ?", true).Order("floor_name").Find(&floors).Error
	if err != nil {
		return nil, storeErr(err, "Fetching floors")
	}
	return floors, nil
}

// GetFloor returns one floor by id.
func GetFloor(db *gorm.DB, id string) (*models.Floor, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindFloor(db, id)
}

// UpdateFloor applies a partial update.
func UpdateFloor(db *gorm.DB, actor types.Actor, id string, in FloorUpdate) (*models.Floor, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	floor, err := FindFloor(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.FloorName != nil && *in.FloorName != floor.FloorName {
		norm := normalizeName(*in.FloorName)
		if norm == "" {
			return nil, types.BadRequest("Floor name is required")
		}
		if norm != floor.FloorNameNormalized {
			var other models.Floor
			err := db.Where("floor_name_normalized = ? AND is_active = ? AND id <> ?", norm, true, floor.ID).
				First(&other).Error
			if err == nil {
				return nil, types.Conflict("Floor already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, storeErr(err, "Fetching floor")
			}
		}
		updates["floor_name"] = *in.FloorName
		updates["floor_name_normalized"] = norm
		changes["floorName"] = Change{From: floor.FloorName, To: *in.FloorName}
		floor.FloorName = *in.FloorName
		floor.FloorNameNormalized = norm
	}

	if len(updates) == 0 {
		return floor, nil
	}
	if err := db.Model(&models.Floor{}).Where("id = ?", floor.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating floor")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityFloor,
		EntityID:    floor.ID,
		EntityName:  floor.FloorName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Floor %q edited", floor.FloorName),
	})
	return floor, nil
}

// DeleteFloor soft-deletes a floor.
func DeleteFloor(db *gorm.DB, actor types.Actor, id string) (*models.Floor, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	floor, err := FindFloor(db, id)
	if err != nil {
		return nil, err
	}
	if !floor.IsActive {
		return nil, types.InvalidState("Floor already deleted")
	}

	updates := map[string]interface{}{
		"is_active":             false,
		"floor_name_normalized": retireName(floor.FloorNameNormalized, floor.ID),
	}
	if err := db.Model(&models.Floor{}).Where("id = ?", floor.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting floor")
	}
	floor.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityFloor,
		EntityID:   floor.ID,
		EntityName: floor.FloorName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Floor %q removed", floor.FloorName),
	})
	return floor, nil
}
