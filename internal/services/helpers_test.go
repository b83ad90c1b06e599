package services_test

import (
	"testing"
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.SubCategory{},
		&models.Floor{},
		&models.RoomType{},
		&models.Room{},
		&models.Item{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func adminActor() types.Actor {
	return types.Actor{ID: uuid.NewString(), Username: "admin", Role: types.RoleAdmin}
}

func viewerActor() types.Actor {
	return types.Actor{ID: uuid.NewString(), Username: "viewer", Role: "Viewer"}
}

// locationFixture bundles the reference rows most item tests need.
type locationFixture struct {
	Category    *models.Category
	SubCategory *models.SubCategory
	Floor       *models.Floor
	RoomType    *models.RoomType
	Room        *models.Room
}

// seedLocations creates one of each reference entity through the services so
// the fixtures carry the same normalized fields production rows do.
func seedLocations(t *testing.T, db *gorm.DB, actor types.Actor) *locationFixture {
	t.Helper()

	category, err := services.CreateCategory(db, actor, services.CategoryInput{CategoryName: "Electronics"})
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	subCategory, err := services.CreateSubCategory(db, actor, services.SubCategoryInput{
		SubCategoryName:         "Laptops",
		SubCategoryAbbreviation: "LP",
		Category:                category.ID,
	})
	if err != nil {
		t.Fatalf("Failed to seed sub-category: %v", err)
	}
	floor, err := services.CreateFloor(db, actor, services.FloorInput{FloorName: "Ground Floor"})
	if err != nil {
		t.Fatalf("Failed to seed floor: %v", err)
	}
	roomType, err := services.CreateRoomType(db, actor, services.RoomTypeInput{RoomTypeName: "Lab"})
	if err != nil {
		t.Fatalf("Failed to seed room type: %v", err)
	}
	room, err := services.CreateRoom(db, actor, services.RoomInput{
		RoomName: "Physics Lab",
		Floor:    floor.ID,
		RoomType: roomType.ID,
	})
	if err != nil {
		t.Fatalf("Failed to seed room: %v", err)
	}

	return &locationFixture{
		Category:    category,
		SubCategory: subCategory,
		Floor:       floor,
		RoomType:    roomType,
		Room:        room,
	}
}

// newItemInput returns a valid create request against the fixture's references.
func newItemInput(f *locationFixture, count uint64) services.ItemCreateInput {
	return services.ItemCreateInput{
		ItemName:              "ThinkPad T14",
		ItemDescription:       "Staff laptop",
		ItemModelNumberOrMake: "Lenovo T14 Gen 4",
		ItemAcquiredDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ItemCost:              1200,
		ItemStatusID:          "1234",
		ItemSourceID:          "1357",
		ItemCategory:          f.Category.ID,
		ItemSubCategory:       f.SubCategory.ID,
		ItemFloor:             f.Floor.ID,
		ItemRoom:              f.Room.ID,
		ItemCount:             types.FlexUint64(count),
	}
}

func createItems(t *testing.T, db *gorm.DB, actor types.Actor, f *locationFixture, count uint64) []models.Item {
	t.Helper()
	items, err := services.CreateItems(db, actor, newItemInput(f, count))
	if err != nil {
		t.Fatalf("Failed to create items: %v", err)
	}
	return items
}

// serialFor renders the serial CreateItems would mint today for the given
// abbreviation and sequence.
func serialFor(abbr string, seq uint64) string {
	return services.FormatSerial(time.Now().Year(), abbr, seq)
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}

// requireKind fails unless err is an APIError of the expected kind.
func requireKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", kind)
	}
	if !types.IsKind(err, kind) {
		t.Fatalf("Expected %s error, got: %v", kind, err)
	}
}
