package services_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestFormatSerial checks the year + abbreviation + padded sequence layout.
func TestFormatSerial(t *testing.T) {
	cases := []struct {
		year     int
		abbr     string
		sequence uint64
		want     string
	}{
		{2024, "LP", 7, "2024LP007"},
		{2024, "LP", 42, "2024LP042"},
		{2019, "PR", 123, "2019PR123"},
		{2024, "LP", 1000, "2024LP1000"},
	}
	for _, c := range cases {
		got := services.FormatSerial(c.year, c.abbr, c.sequence)
		if got != c.want {
			t.Errorf("FormatSerial(%d, %q, %d) = %q, want %q", c.year, c.abbr, c.sequence, got, c.want)
		}
	}
}

// TestAllocateSerialsAdvancesCounter checks that a batch continues from the
// current counter and leaves it at the end of the reserved window.
func TestAllocateSerialsAdvancesCounter(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	err := db.Model(&models.SubCategory{}).
		Where("id = ?", fixture.SubCategory.ID).
		Update("last_item_serial_number", 3).Error
	if err != nil {
		t.Fatalf("Failed to prime counter: %v", err)
	}

	batch, err := services.AllocateSerials(db, fixture.SubCategory.ID, 3, 2024)
	if err != nil {
		t.Fatalf("Failed to allocate serials: %v", err)
	}

	want := []string{"2024LP004", "2024LP005", "2024LP006"}
	if len(batch.Serials) != len(want) {
		t.Fatalf("Expected %d serials, got %d", len(want), len(batch.Serials))
	}
	for i, serial := range want {
		if batch.Serials[i] != serial {
			t.Errorf("Serial %d = %q, want %q", i, batch.Serials[i], serial)
		}
	}
	if batch.Start != 3 || batch.End != 6 {
		t.Errorf("Expected window (3, 6], got (%d, %d]", batch.Start, batch.End)
	}

	updated, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if updated.LastItemSerialNumber != 6 {
		t.Errorf("Expected counter 6, got %d", updated.LastItemSerialNumber)
	}
}

// TestAllocateSerialsNeverReusesSequences checks that consecutive batches hand
// out disjoint sequence windows.
func TestAllocateSerialsNeverReusesSequences(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		batch, err := services.AllocateSerials(db, fixture.SubCategory.ID, 5, 2024)
		if err != nil {
			t.Fatalf("Batch %d failed: %v", i, err)
		}
		for _, serial := range batch.Serials {
			if seen[serial] {
				t.Fatalf("Serial %q handed out twice", serial)
			}
			seen[serial] = true
		}
	}
	if len(seen) != 20 {
		t.Errorf("Expected 20 distinct serials, got %d", len(seen))
	}

	updated, err := services.FindSubCategory(db, fixture.SubCategory.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if updated.LastItemSerialNumber != 20 {
		t.Errorf("Expected counter 20, got %d", updated.LastItemSerialNumber)
	}
}

// TestAllocateSerialsConcurrent races goroutines on one counter. A file-backed
// database capped at a single connection serializes the statements while still
// letting goroutines interleave between the counter read and the conditional
// update, so losing goroutines have to take the retry path.
func TestAllocateSerialsConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serials.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.SubCategory{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	sub := models.SubCategory{
		SubCategoryName:                   "Laptops",
		SubCategoryAbbreviation:           "LP",
		SubCategoryNameNormalized:         "laptops",
		SubCategoryAbbreviationNormalized: "lp",
		CategoryID:                        uuid.NewString(),
		IsActive:                          true,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("Failed to seed sub-category: %v", err)
	}

	const workers = 6
	serials := make(chan string, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch, err := services.AllocateSerials(db, sub.ID, 1, 2024)
			if err != nil {
				errs <- err
				return
			}
			serials <- batch.Serials[0]
		}()
	}
	wg.Wait()
	close(serials)
	close(errs)

	for err := range errs {
		t.Fatalf("Allocation failed under contention: %v", err)
	}
	seen := map[string]bool{}
	for serial := range serials {
		if seen[serial] {
			t.Fatalf("Serial %q handed out twice", serial)
		}
		seen[serial] = true
	}
	for seq := uint64(1); seq <= workers; seq++ {
		if want := services.FormatSerial(2024, "LP", seq); !seen[want] {
			t.Errorf("Serial %q missing from the allocations", want)
		}
	}

	updated, err := services.FindSubCategory(db, sub.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if updated.LastItemSerialNumber != workers {
		t.Errorf("Expected counter %d, got %d", workers, updated.LastItemSerialNumber)
	}
}

func TestAllocateSerialsRejectsZeroCount(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedLocations(t, db, adminActor())

	_, err := services.AllocateSerials(db, fixture.SubCategory.ID, 0, 2024)
	requireKind(t, err, types.KindBadRequest)
}

func TestAllocateSerialsUnknownSubCategory(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.AllocateSerials(db, uuid.NewString(), 1, 2024)
	requireKind(t, err, types.KindNotFound)
}

// TestNextSerialForMove checks that the moved item keeps its original year
// prefix while taking the next sequence on the target counter.
func TestNextSerialForMove(t *testing.T) {
	db := setupTestDB(t)
	actor := adminActor()
	fixture := seedLocations(t, db, actor)

	printers, err := services.CreateSubCategory(db, actor, services.SubCategoryInput{
		SubCategoryName:         "Printers",
		SubCategoryAbbreviation: "PR",
		Category:                fixture.Category.ID,
	})
	if err != nil {
		t.Fatalf("Failed to seed target sub-category: %v", err)
	}
	err = db.Model(&models.SubCategory{}).
		Where("id = ?", printers.ID).
		Update("last_item_serial_number", 5).Error
	if err != nil {
		t.Fatalf("Failed to prime counter: %v", err)
	}

	item := &models.Item{ItemSerialNumber: "2019LP002"}
	serial, err := services.NextSerialForMove(db, item, printers.ID)
	if err != nil {
		t.Fatalf("Failed to allocate move serial: %v", err)
	}
	if serial != "2019PR006" {
		t.Errorf("Expected serial 2019PR006, got %q", serial)
	}

	updated, err := services.FindSubCategory(db, printers.ID)
	if err != nil {
		t.Fatalf("Failed to reload sub-category: %v", err)
	}
	if updated.LastItemSerialNumber != 6 {
		t.Errorf("Expected target counter 6, got %d", updated.LastItemSerialNumber)
	}
}
