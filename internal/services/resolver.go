package services

import (
	"errors"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// ItemReferences bundles the resolved rows an item points at. References
// resolve by id alone: a soft-deleted row still resolves, so history-bearing
// items keep valid references.
type ItemReferences struct {
	Category    models.Category
	SubCategory models.SubCategory
	Floor       models.Floor
	Room        models.Room
}

// findByID loads one row by primary key into dest, mapping absence to a
// NotFound naming the reference that failed.
func findByID(db *gorm.DB, dest interface{}, id, label string) error {
	err := db.Where("id = ?", id).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("%s not found", label)
		}
		return storeErr(err, "Fetching "+label)
	}
	return nil
}

// FindCategory returns the category with the given id.
func FindCategory(db *gorm.DB, id string) (*models.Category, error) {
	var c models.Category
	if err := findByID(db, &c, id, "Category"); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindSubCategory returns the sub-category with the given id.
func FindSubCategory(db *gorm.DB, id string) (*models.SubCategory, error) {
	var s models.SubCategory
	if err := findByID(db, &s, id, "Sub-category"); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindFloor returns the floor with the given id.
func FindFloor(db *gorm.DB, id string) (*models.Floor, error) {
	var f models.Floor
	if err := findByID(db, &f, id, "Floor"); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindRoomType returns the room type with the given id.
func FindRoomType(db *gorm.DB, id string) (*models.RoomType, error) {
	var r models.RoomType
	if err := findByID(db, &r, id, "Room type"); err != nil {
		return nil, err
	}
	return &r, nil
}

// FindRoom returns the room with the given id.
func FindRoom(db *gorm.DB, id string) (*models.Room, error) {
	var r models.Room
	if err := findByID(db, &r, id, "Room"); err != nil {
		return nil, err
	}
	return &r, nil
}

// FindItem returns the item with the given id.
func FindItem(db *gorm.DB, id string) (*models.Item, error) {
	var i models.Item
	if err := findByID(db, &i, id, "Item"); err != nil {
		return nil, err
	}
	return &i, nil
}

// FindUser returns the user with the given id.
func FindUser(db *gorm.DB, id string) (*models.User, error) {
	var u models.User
	if err := findByID(db, &u, id, "User"); err != nil {
		return nil, err
	}
	return &u, nil
}

// ResolveItemReferences validates every reference an item carries before any
// write happens, naming the first reference that fails.
func ResolveItemReferences(db *gorm.DB, categoryID, subCategoryID, floorID, roomID string) (*ItemReferences, error) {
	category, err := FindCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	subCategory, err := FindSubCategory(db, subCategoryID)
	if err != nil {
		return nil, err
	}
	floor, err := FindFloor(db, floorID)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	return &ItemReferences{
		Category:    *category,
		SubCategory: *subCategory,
		Floor:       *floor,
		Room:        *room,
	}, nil
}

// ResolveRoomWithFloor resolves a target room and derives its floor. Items
// moved between rooms always take the room's floor; callers never supply the
// floor independently.
func ResolveRoomWithFloor(db *gorm.DB, roomID string) (*models.Room, *models.Floor, error) {
	room, err := FindRoom(db, roomID)
	if err != nil {
		return nil, nil, err
	}
	floor, err := FindFloor(db, room.FloorID)
	if err != nil {
		return nil, nil, err
	}
	return room, floor, nil
}
