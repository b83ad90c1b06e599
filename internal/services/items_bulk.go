package services

import (
	"log"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/registry"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// BulkItemIDs is the request body shared by the bulk item operations.
type BulkItemIDs struct {
	ItemIDs types.FlexList[string] `json:"item_ids" validate:"required,min=1"`
}

// BulkMoveInput targets a list of items at one room.
type BulkMoveInput struct {
	ItemIDs types.FlexList[string] `json:"item_ids" validate:"required,min=1"`
	Room    string                 `json:"room" validate:"required"`
}

// BulkStatusInput targets a list of items at one status.
type BulkStatusInput struct {
	ItemIDs  types.FlexList[string] `json:"item_ids" validate:"required,min=1"`
	StatusID string                 `json:"itemStatusId" validate:"required"`
}

// BulkFailure records one item that validated but failed to write.
type BulkFailure struct {
	ItemID  string `json:"itemId"`
	Message string `json:"message"`
}

// BulkResult reports which items were written and which failed after
// validation. Validation failures never produce a BulkResult; they abort the
// whole batch before any write.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// resolveBulkItems parses and resolves every target item up front. Any
// failure here aborts the batch before a single write.
func resolveBulkItems(db *gorm.DB, rawIDs []string) ([]*models.Item, error) {
	if len(rawIDs) == 0 {
		return nil, types.BadRequest("At least one item id is required")
	}
	ids, err := ParseIDs(rawIDs)
	if err != nil {
		return nil, err
	}
	items := make([]*models.Item, 0, len(ids))
	for _, id := range ids {
		item, err := FindItem(db, id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// BulkDeleteItems soft-deletes a list of items. Validation is all-or-nothing
// (every id must parse and resolve, and every item must still be active);
// the writes that follow are independent per item.
func BulkDeleteItems(db *gorm.DB, actor types.Actor, in BulkItemIDs) (*BulkResult, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	items, err := resolveBulkItems(db, in.ItemIDs.Slice())
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if !item.IsActive {
			return nil, types.InvalidState("Item already deleted")
		}
	}

	result := &BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	for _, item := range items {
		if err := deleteItem(db, actor, item); err != nil {
			log.Printf("bulk delete: item %s: %v", item.ID, err)
			result.Failed = append(result.Failed, BulkFailure{ItemID: item.ID, Message: types.AsAPIError(err).Message})
			continue
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}
	return result, nil
}

// BulkMoveItems relocates a list of items into one room. The target room and
// its floor are resolved once, before any write.
func BulkMoveItems(db *gorm.DB, actor types.Actor, in BulkMoveInput) (*BulkResult, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	roomID, err := ParseID(in.Room)
	if err != nil {
		return nil, err
	}
	room, floor, err := ResolveRoomWithFloor(db, roomID)
	if err != nil {
		return nil, err
	}
	items, err := resolveBulkItems(db, in.ItemIDs.Slice())
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	for _, item := range items {
		if err := moveItem(db, actor, item, room, floor); err != nil {
			log.Printf("bulk move: item %s: %v", item.ID, err)
			result.Failed = append(result.Failed, BulkFailure{ItemID: item.ID, Message: types.AsAPIError(err).Message})
			continue
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}
	return result, nil
}

// BulkChangeItemStatus sets one status on a list of items. An unrecognized
// status id aborts the batch before any write.
func BulkChangeItemStatus(db *gorm.DB, actor types.Actor, in BulkStatusInput) (*BulkResult, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	statusName := registry.StatusNameByID(in.StatusID)
	if statusName == "" {
		return nil, types.NotFound("valid status not found")
	}
	items, err := resolveBulkItems(db, in.ItemIDs.Slice())
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	for _, item := range items {
		if err := changeItemStatus(db, actor, item, in.StatusID, statusName); err != nil {
			log.Printf("bulk status: item %s: %v", item.ID, err)
			result.Failed = append(result.Failed, BulkFailure{ItemID: item.ID, Message: types.AsAPIError(err).Message})
			continue
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}
	return result, nil
}
