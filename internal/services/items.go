// items.go
//
// A scalable, high performance drop-in replacement for the campus inventory nodejs service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of assetdb.
// assetdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// assetdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with assetdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"fmt"
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/registry"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// ItemCreateInput carries the fields accepted when creating items. ItemCount
// > 1 creates that many identical items, each with its own serial number.
type ItemCreateInput struct {
	ItemName              string           `json:"itemName" validate:"required,max=255"`
	ItemDescription       string           `json:"itemDescription" validate:"omitempty,max=1024"`
	ItemModelNumberOrMake string           `json:"itemModelNumberOrMake" validate:"omitempty,max=255"`
	ItemAcquiredDate      time.Time        `json:"itemAcquiredDate" validate:"required"`
	ItemCost              float64          `json:"itemCost" validate:"gte=0"`
	ItemStatusID          string           `json:"itemStatusId" validate:"required"`
	ItemSourceID          string           `json:"itemSourceId" validate:"required"`
	ItemCategory          string           `json:"itemCategory" validate:"required"`
	ItemSubCategory       string           `json:"itemSubCategory" validate:"required"`
	ItemFloor             string           `json:"itemFloor" validate:"required"`
	ItemRoom              string           `json:"itemRoom" validate:"required"`
	ItemRemark            string           `json:"itemRemark" validate:"omitempty,max=1024"`
	ItemCount             types.FlexUint64 `json:"item_create_count"`
}

// ItemUpdate carries the optional fields of a partial item detail update.
// Location, status and sub-category changes go through their dedicated
// operations, not here.
type ItemUpdate struct {
	ItemName              *string    `json:"itemName" validate:"omitempty,max=255"`
	ItemDescription       *string    `json:"itemDescription" validate:"omitempty,max=1024"`
	ItemModelNumberOrMake *string    `json:"itemModelNumberOrMake" validate:"omitempty,max=255"`
	ItemAcquiredDate      *time.Time `json:"itemAcquiredDate"`
	ItemCost              *float64   `json:"itemCost" validate:"omitempty,gte=0"`
	ItemSourceID          *string    `json:"itemSourceId"`
	ItemRemark            *string    `json:"itemRemark" validate:"omitempty,max=1024"`
}

// CreateItems validates every reference, allocates one serial per item, then
// inserts the batch. Validation failures happen before any write; the
// counter, once advanced, stays advanced even if a later insert fails
// (serials are never reused).
func CreateItems(db *gorm.DB, actor types.Actor, in ItemCreateInput) ([]models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}

	count := in.ItemCount.Int()
	if count == 0 {
		count = 1
	}

	// Registry lookups come first so an unknown id can never cause a
	// partial write.
	statusName := registry.StatusNameByID(in.ItemStatusID)
	if statusName == "" {
		return nil, types.NotFound("valid status not found")
	}
	sourceName := registry.SourceNameByID(in.ItemSourceID)
	if sourceName == "" {
		return nil, types.NotFound("valid source not found")
	}

	categoryID, err := ParseID(in.ItemCategory)
	if err != nil {
		return nil, err
	}
	subCategoryID, err := ParseID(in.ItemSubCategory)
	if err != nil {
		return nil, err
	}
	floorID, err := ParseID(in.ItemFloor)
	if err != nil {
		return nil, err
	}
	roomID, err := ParseID(in.ItemRoom)
	if err != nil {
		return nil, err
	}
	refs, err := ResolveItemReferences(db, categoryID, subCategoryID, floorID, roomID)
	if err != nil {
		return nil, err
	}

	// Serials are stamped with the year the item enters the system, not the
	// year it was acquired.
	batch, err := AllocateSerials(db, refs.SubCategory.ID, count, time.Now().Year())
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, count)
	for _, serial := range batch.Serials {
		item := models.Item{
			ItemName:              in.ItemName,
			ItemDescription:       in.ItemDescription,
			ItemModelNumberOrMake: in.ItemModelNumberOrMake,
			ItemAcquiredDate:      in.ItemAcquiredDate,
			ItemCost:              in.ItemCost,
			ItemStatusID:          in.ItemStatusID,
			ItemStatus:            statusName,
			ItemSourceID:          in.ItemSourceID,
			ItemSource:            sourceName,
			ItemSerialNumber:      serial,
			ItemRemark:            in.ItemRemark,
			CategoryID:            refs.Category.ID,
			SubCategoryID:         refs.SubCategory.ID,
			FloorID:               refs.Floor.ID,
			RoomID:                refs.Room.ID,
			IsActive:              true,
			CreatedBy:             actor.ID,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, storeErr(err, "Adding item")
		}
		items = append(items, item)

		AppendActivity(db, LedgerEntry{
			Action:     "added",
			EntityType: models.EntityItem,
			EntityID:   item.ID,
			EntityName: item.ItemName,
			Actor:      actor,
			Changes: map[string]Change{
				"room":     {From: nil, To: refs.Room.RoomName},
				"floor":    {From: nil, To: refs.Floor.FloorName},
				"status":   {From: nil, To: statusName},
				"isActive": {From: nil, To: true},
			},
			Description: fmt.Sprintf("Item %q (%s) added in room %q", item.ItemName, serial, refs.Room.RoomName),
		})
	}

	return items, nil
}

// GetItem returns one item by id.
func GetItem(db *gorm.DB, id string) (*models.Item, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindItem(db, id)
}

// UpdateItemDetails applies a partial update to an item's descriptive fields.
func UpdateItemDetails(db *gorm.DB, actor types.Actor, id string, in ItemUpdate) (*models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.ItemName != nil && *in.ItemName != item.ItemName {
		if normalizeName(*in.ItemName) == "" {
			return nil, types.BadRequest("Item name is required")
		}
		updates["item_name"] = *in.ItemName
		changes["itemName"] = Change{From: item.ItemName, To: *in.ItemName}
		item.ItemName = *in.ItemName
	}
	if in.ItemDescription != nil && *in.ItemDescription != item.ItemDescription {
		updates["item_description"] = *in.ItemDescription
		changes["itemDescription"] = Change{From: item.ItemDescription, To: *in.ItemDescription}
		item.ItemDescription = *in.ItemDescription
	}
	if in.ItemModelNumberOrMake != nil && *in.ItemModelNumberOrMake != item.ItemModelNumberOrMake {
		updates["item_model_number_or_make"] = *in.ItemModelNumberOrMake
		changes["itemModelNumberOrMake"] = Change{From: item.ItemModelNumberOrMake, To: *in.ItemModelNumberOrMake}
		item.ItemModelNumberOrMake = *in.ItemModelNumberOrMake
	}
	if in.ItemAcquiredDate != nil && !in.ItemAcquiredDate.Equal(item.ItemAcquiredDate) {
		updates["item_acquired_date"] = *in.ItemAcquiredDate
		changes["itemAcquiredDate"] = Change{From: item.ItemAcquiredDate, To: *in.ItemAcquiredDate}
		item.ItemAcquiredDate = *in.ItemAcquiredDate
	}
	if in.ItemCost != nil && *in.ItemCost != item.ItemCost {
		updates["item_cost"] = *in.ItemCost
		changes["itemCost"] = Change{From: item.ItemCost, To: *in.ItemCost}
		item.ItemCost = *in.ItemCost
	}
	if in.ItemSourceID != nil && *in.ItemSourceID != item.ItemSourceID {
		sourceName := registry.SourceNameByID(*in.ItemSourceID)
		if sourceName == "" {
			return nil, types.NotFound("valid source not found")
		}
		updates["item_source_id"] = *in.ItemSourceID
		updates["item_source"] = sourceName
		changes["source"] = Change{From: item.ItemSource, To: sourceName}
		item.ItemSourceID = *in.ItemSourceID
		item.ItemSource = sourceName
	}
	if in.ItemRemark != nil && *in.ItemRemark != item.ItemRemark {
		updates["item_remark"] = *in.ItemRemark
		changes["itemRemark"] = Change{From: item.ItemRemark, To: *in.ItemRemark}
		item.ItemRemark = *in.ItemRemark
	}

	if len(updates) == 0 {
		return item, nil
	}
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating item")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityItem,
		EntityID:    item.ID,
		EntityName:  item.ItemName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Item %q (%s) edited", item.ItemName, item.ItemSerialNumber),
	})
	return item, nil
}

// moveItem relocates one already-resolved item into a resolved room/floor
// pair and logs the old and new names. Shared by the single and bulk moves.
func moveItem(db *gorm.DB, actor types.Actor, item *models.Item, room *models.Room, floor *models.Floor) error {
	oldRoom, err := FindRoom(db, item.RoomID)
	if err != nil {
		return err
	}
	oldFloor, err := FindFloor(db, item.FloorID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"item_room_id":  room.ID,
		"item_floor_id": floor.ID,
	}
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return storeErr(err, "Moving item")
	}
	item.RoomID = room.ID
	item.FloorID = floor.ID

	AppendActivity(db, LedgerEntry{
		Action:     "moved",
		EntityType: models.EntityItem,
		EntityID:   item.ID,
		EntityName: item.ItemName,
		Actor:      actor,
		Changes: map[string]Change{
			"room":  {From: oldRoom.RoomName, To: room.RoomName},
			"floor": {From: oldFloor.FloorName, To: floor.FloorName},
		},
		Description: fmt.Sprintf("Item %q (%s) moved from %q to %q", item.ItemName, item.ItemSerialNumber, oldRoom.RoomName, room.RoomName),
	})
	return nil
}

// MoveItem relocates an item to another room. The floor is always derived
// from the target room.
func MoveItem(db *gorm.DB, actor types.Actor, itemID, roomID string) (*models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	itemID, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}
	roomID, err = ParseID(roomID)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, itemID)
	if err != nil {
		return nil, err
	}
	room, floor, err := ResolveRoomWithFloor(db, roomID)
	if err != nil {
		return nil, err
	}
	if err := moveItem(db, actor, item, room, floor); err != nil {
		return nil, err
	}
	return item, nil
}

// changeItemStatus rewrites one item's status pair and logs the transition.
func changeItemStatus(db *gorm.DB, actor types.Actor, item *models.Item, statusID, statusName string) error {
	updates := map[string]interface{}{
		"item_status_id": statusID,
		"item_status":    statusName,
	}
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return storeErr(err, "Updating item status")
	}
	oldStatus := item.ItemStatus
	item.ItemStatusID = statusID
	item.ItemStatus = statusName

	AppendActivity(db, LedgerEntry{
		Action:     "changed status",
		EntityType: models.EntityItem,
		EntityID:   item.ID,
		EntityName: item.ItemName,
		Actor:      actor,
		Changes: map[string]Change{
			"status": {From: oldStatus, To: statusName},
		},
		Description: fmt.Sprintf("Item %q (%s) status changed from %q to %q", item.ItemName, item.ItemSerialNumber, oldStatus, statusName),
	})
	return nil
}

// ChangeItemStatus sets an item's status. Any-to-any transitions within the
// closed status set are allowed.
func ChangeItemStatus(db *gorm.DB, actor types.Actor, itemID, statusID string) (*models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	statusName := registry.StatusNameByID(statusID)
	if statusName == "" {
		return nil, types.NotFound("valid status not found")
	}
	itemID, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, itemID)
	if err != nil {
		return nil, err
	}
	if err := changeItemStatus(db, actor, item, statusID, statusName); err != nil {
		return nil, err
	}
	return item, nil
}

// MoveItemSubCategory reassigns an item to another sub-category and mints a
// new serial on the target's counter. The year prefix of the old serial is
// preserved; the source sub-category's counter is never decremented.
func MoveItemSubCategory(db *gorm.DB, actor types.Actor, itemID, subCategoryID string) (*models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	itemID, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}
	subCategoryID, err = ParseID(subCategoryID)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, itemID)
	if err != nil {
		return nil, err
	}
	target, err := FindSubCategory(db, subCategoryID)
	if err != nil {
		return nil, err
	}
	if target.ID == item.SubCategoryID {
		return item, nil
	}
	oldSubCategory, err := FindSubCategory(db, item.SubCategoryID)
	if err != nil {
		return nil, err
	}

	newSerial, err := NextSerialForMove(db, item, target.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"item_sub_category_id": target.ID,
		"item_category_id":     target.CategoryID,
		"item_serial_number":   newSerial,
	}
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating item sub-category")
	}
	oldSerial := item.ItemSerialNumber
	item.SubCategoryID = target.ID
	item.CategoryID = target.CategoryID
	item.ItemSerialNumber = newSerial

	AppendActivity(db, LedgerEntry{
		Action:     "moved",
		EntityType: models.EntityItem,
		EntityID:   item.ID,
		EntityName: item.ItemName,
		Actor:      actor,
		Changes: map[string]Change{
			"subCategory":  {From: oldSubCategory.SubCategoryName, To: target.SubCategoryName},
			"serialNumber": {From: oldSerial, To: newSerial},
		},
		Description: fmt.Sprintf("Item %q moved from sub-category %q to %q", item.ItemName, oldSubCategory.SubCategoryName, target.SubCategoryName),
	})
	return item, nil
}

// deleteItem soft-deletes one already-resolved item. Shared by the single
// and bulk deletes.
func deleteItem(db *gorm.DB, actor types.Actor, item *models.Item) error {
	if !item.IsActive {
		return types.InvalidState("Item already deleted")
	}
	now := time.Now()
	updates := map[string]interface{}{
		"is_active":      false,
		"deactivated_at": now,
	}
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		return storeErr(err, "Deleting item")
	}
	item.IsActive = false
	item.DeactivatedAt = &now

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityItem,
		EntityID:   item.ID,
		EntityName: item.ItemName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Item %q (%s) removed", item.ItemName, item.ItemSerialNumber),
	})
	return nil
}

// DeleteItem soft-deletes an item, stamping its deactivation time.
func DeleteItem(db *gorm.DB, actor types.Actor, id string) (*models.Item, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, id)
	if err != nil {
		return nil, err
	}
	if err := deleteItem(db, actor, item); err != nil {
		return nil, err
	}
	return item, nil
}
