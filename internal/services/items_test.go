package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
)

// TestCreateItemsBatch checks that a count-N create yields N rows with
// consecutive serials and one ledger record each.
func TestCreateItemsBatch(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	items := createItems(t, db, actor, fixture, 3)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	want := []string{serialFor("LP", 1), serialFor("LP", 2), serialFor("LP", 3)}
	for i, item := range items {
		if item.ItemSerialNumber != want[i] {
			t.Errorf("Item %d serial = %q, want %q", i, item.ItemSerialNumber, want[i])
		}
		if item.ItemStatus != "Working" || item.ItemSource != "Purchase" {
			t.Errorf("Item %d carries status %q source %q", i, item.ItemStatus, item.ItemSource)
		}
		if !item.IsActive {
			t.Errorf("Item %d should be active", i)
		}

		logs, err := services.EntityLogs(db, models.EntityItem, item.ID)
		if err != nil {
			t.Fatalf("Failed to fetch logs: %v", err)
		}
		if len(logs) != 1 || logs[0].Action != "added" {
			t.Errorf("Item %d expected one 'added' record, got %+v", i, logs)
		}
	}

	sub, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if sub.LastItemSerialNumber != 3 {
		t.Errorf("Expected counter 3, got %d", sub.LastItemSerialNumber)
	}
}

// TestCreateItemsSerialYearIsCurrent checks that the serial carries the year
// the item enters the system, not the year it was acquired.
func TestCreateItemsSerialYearIsCurrent(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	in := newItemInput(fixture, 1)
	in.ItemAcquiredDate = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	items, err := services.CreateItems(db, actor, in)
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	if want := serialFor("LP", 1); items[0].ItemSerialNumber != want {
		t.Errorf("Serial = %q, want %q", items[0].ItemSerialNumber, want)
	}
	if items[0].ItemAcquiredDate.Year() != 2020 {
		t.Errorf("Acquired date changed: %v", items[0].ItemAcquiredDate)
	}
}

func TestCreateItemsDefaultsCountToOne(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	items := createItems(t, db, actor, fixture, 0)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item for count 0, got %d", len(items))
	}
}

// TestCreateItemsUnknownStatus checks that a registry miss fails before any
// write, leaving the counter untouched.
func TestCreateItemsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	in := newItemInput(fixture, 2)
	in.ItemStatusID = "9999"
	_, err := services.CreateItems(db, actor, in)
	requireKind(t, err, types.KindNotFound)

	sub, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if sub.LastItemSerialNumber != 0 {
		t.Errorf("Expected counter untouched at 0, got %d", sub.LastItemSerialNumber)
	}

	var count int64
	db.Model(&models.Item{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no items written, got %d", count)
	}
}

func TestCreateItemsUnknownRoom(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	in := newItemInput(fixture, 1)
	in.ItemRoom = "018f3b1c-0000-7000-8000-000000000000"
	_, err := services.CreateItems(db, actor, in)
	requireKind(t, err, types.KindNotFound)
}

// TestUpdateItemDetailsDiffsOnlyStagedFields checks that the ledger diff
// carries exactly the fields the update altered.
func TestUpdateItemDetailsDiffsOnlyStagedFields(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	item := createItems(t, db, actor, fixture, 1)[0]

	updated, err := services.UpdateItemDetails(db, actor, item.ID, services.ItemUpdate{
		ItemName: strPtr("ThinkPad T14s"),
		ItemCost: floatPtr(1350),
	})
	if err != nil {
		t.Fatalf("Failed to update item: %v", err)
	}
	if updated.ItemName != "ThinkPad T14s" || updated.ItemCost != 1350 {
		t.Errorf("Update not applied: %+v", updated)
	}

	logs, err := services.EntityLogs(db, models.EntityItem, item.ID)
	if err != nil {
		t.Fatalf("Failed to fetch logs: %v", err)
	}
	var edit *models.ActivityLog
	for i := range logs {
		if logs[i].Action == "edited details" {
			edit = &logs[i]
		}
	}
	if edit == nil {
		t.Fatal("Expected an 'edited details' record")
	}

	var changes map[string]services.Change
	if err := json.Unmarshal(edit.Changes, &changes); err != nil {
		t.Fatalf("Failed to decode changes: %v", err)
	}
	if len(changes) != 2 {
		t.Errorf("Expected exactly 2 changed fields, got %d: %v", len(changes), changes)
	}
	if _, ok := changes["itemName"]; !ok {
		t.Error("Expected an itemName change")
	}
	if _, ok := changes["itemCost"]; !ok {
		t.Error("Expected an itemCost change")
	}
}

// TestMoveItemDerivesFloorFromRoom checks that a room move always drags the
// item onto the target room's floor.
func TestMoveItemDerivesFloorFromRoom(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	item := createItems(t, db, actor, fixture, 1)[0]

	upstairs, err := services.CreateFloor(db, actor, services.FloorInput{FloorName: "First Floor"})
	if err != nil {
		t.Fatalf("Failed to create floor: %v", err)
	}
	store, err := services.CreateRoom(db, actor, services.RoomInput{
		RoomName: "Store Room",
		Floor:    upstairs.ID,
		RoomType: fixture.RoomType.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	moved, err := services.MoveItem(db, actor, item.ID, store.ID)
	if err != nil {
		t.Fatalf("Failed to move item: %v", err)
	}
	if moved.RoomID != store.ID {
		t.Errorf("Expected room %q, got %q", store.ID, moved.RoomID)
	}
	if moved.FloorID != upstairs.ID {
		t.Errorf("Expected floor derived from room, got %q", moved.FloorID)
	}

	logs, err := services.EntityLogs(db, models.EntityItem, item.ID)
	if err != nil {
		t.Fatalf("Failed to fetch logs: %v", err)
	}
	var move *models.ActivityLog
	for i := range logs {
		if logs[i].Action == "moved" {
			move = &logs[i]
		}
	}
	if move == nil {
		t.Fatal("Expected a 'moved' record")
	}
	var changes map[string]services.Change
	if err := json.Unmarshal(move.Changes, &changes); err != nil {
		t.Fatalf("Failed to decode changes: %v", err)
	}
	if changes["room"].From != "Physics Lab" || changes["room"].To != "Store Room" {
		t.Errorf("Room change = %v -> %v", changes["room"].From, changes["room"].To)
	}
	if changes["floor"].From != "Ground Floor" || changes["floor"].To != "First Floor" {
		t.Errorf("Floor change = %v -> %v", changes["floor"].From, changes["floor"].To)
	}
}

func TestChangeItemStatus(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	item := createItems(t, db, actor, fixture, 1)[0]

	changed, err := services.ChangeItemStatus(db, actor, item.ID, "3456")
	if err != nil {
		t.Fatalf("Failed to change status: %v", err)
	}
	if changed.ItemStatus != "Repairable" || changed.ItemStatusID != "3456" {
		t.Errorf("Expected Repairable/3456, got %q/%q", changed.ItemStatus, changed.ItemStatusID)
	}

	_, err = services.ChangeItemStatus(db, actor, item.ID, "0000")
	requireKind(t, err, types.KindNotFound)
}

// TestMoveItemSubCategoryReserializes is the full re-serialization scenario:
// the moved item keeps its year prefix, takes the target's next sequence, and
// the source counter never rolls back.
func TestMoveItemSubCategoryReserializes(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	items := createItems(t, db, actor, fixture, 3)

	printers, err := services.CreateSubCategory(db, actor, services.SubCategoryInput{
		SubCategoryName:         "Printers",
		SubCategoryAbbreviation: "PR",
		Category:                fixture.Category.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create sub-category: %v", err)
	}
	err = db.Model(&models.SubCategory{}).
		Where("id = ?", printers.ID).
		Update("last_item_serial_number", 5).Error
	if err != nil {
		t.Fatalf("Failed to prime counter: %v", err)
	}

	moved, err := services.MoveItemSubCategory(db, actor, items[1].ID, printers.ID)
	if err != nil {
		t.Fatalf("Failed to move item: %v", err)
	}
	if want := serialFor("PR", 6); moved.ItemSerialNumber != want {
		t.Errorf("Expected serial %q, got %q", want, moved.ItemSerialNumber)
	}
	if moved.SubCategoryID != printers.ID {
		t.Errorf("Expected sub-category %q, got %q", printers.ID, moved.SubCategoryID)
	}
	if moved.CategoryID != fixture.Category.ID {
		t.Errorf("Expected category to follow the target sub-category")
	}

	source, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload source: %v", err)
	}
	if source.LastItemSerialNumber != 3 {
		t.Errorf("Source counter rolled back: got %d, want 3", source.LastItemSerialNumber)
	}
	target, err := services.FindSubCategory(db, printers.ID)
	if err != nil {
		t.Fatalf("Failed to reload target: %v", err)
	}
	if target.LastItemSerialNumber != 6 {
		t.Errorf("Expected target counter 6, got %d", target.LastItemSerialNumber)
	}
}

func TestMoveItemSubCategorySameTargetIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	item := createItems(t, db, actor, fixture, 1)[0]

	moved, err := services.MoveItemSubCategory(db, actor, item.ID, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("No-op move failed: %v", err)
	}
	if moved.ItemSerialNumber != item.ItemSerialNumber {
		t.Errorf("Serial changed on no-op move: %q -> %q", item.ItemSerialNumber, moved.ItemSerialNumber)
	}

	sub, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if sub.LastItemSerialNumber != 1 {
		t.Errorf("Counter moved on no-op: got %d, want 1", sub.LastItemSerialNumber)
	}
}

// TestDeleteItemStampsDeactivation checks the soft delete and its terminal
// nature.
func TestDeleteItemStampsDeactivation(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)
	item := createItems(t, db, actor, fixture, 1)[0]

	before := time.Now().Add(-time.Second)
	deleted, err := services.DeleteItem(db, actor, item.ID)
	if err != nil {
		t.Fatalf("Failed to delete item: %v", err)
	}
	if deleted.IsActive {
		t.Error("Expected item to be inactive")
	}
	if deleted.DeactivatedAt == nil || deleted.DeactivatedAt.Before(before) {
		t.Errorf("Expected a fresh deactivation stamp, got %v", deleted.DeactivatedAt)
	}

	_, err = services.DeleteItem(db, actor, item.ID)
	requireKind(t, err, types.KindInvalidState)
}

func TestItemMutationsRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedLocations(t, db, adminActor())
	viewer := viewerActor()

	_, err := services.CreateItems(db, viewer, newItemInput(fixture, 1))
	requireKind(t, err, types.KindAuthorization)

	item := createItems(t, db, adminActor(), fixture, 1)[0]
	_, err = services.DeleteItem(db, viewer, item.ID)
	requireKind(t, err, types.KindAuthorization)
	_, err = services.ChangeItemStatus(db, viewer, item.ID, "3456")
	requireKind(t, err, types.KindAuthorization)
}
