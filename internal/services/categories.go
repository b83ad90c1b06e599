package services

import (
	"errors"
	"fmt"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// CategoryInput carries the fields accepted when creating a category.
type CategoryInput struct {
	CategoryName string `json:"categoryName" validate:"required,max=255"`
}

// CategoryUpdate carries the optional fields of a partial category update.
type CategoryUpdate struct {
	CategoryName *string `json:"categoryName" validate:"omitempty,max=255"`
}

// CreateCategory adds a category, rejecting any name that case-folds to the
// same form as an existing active category.
func CreateCategory(db *gorm.DB, actor types.Actor, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	norm := normalizeName(in.CategoryName)
	if norm == "" {
		return nil, types.BadRequest("Category name is required")
	}

	var existing models.Category
	err := db.Where("category_name_normalized = ? AND is_active = ?", norm, true).First(&existing).Error
	if err == nil {
		return nil, types.Conflict("Category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err, "Fetching category")
	}

	category := models.Category{
		CategoryName:           in.CategoryName,
		CategoryNameNormalized: norm,
		IsActive:               true,
		CreatedBy:              actor.ID,
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, storeErr(err, "Adding category")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntityCategory,
		EntityID:    category.ID,
		EntityName:  category.CategoryName,
		Actor:       actor,
		Description: fmt.Sprintf("Category %q added", category.CategoryName),
	})
	return &category, nil
}

// ListCategories returns all active categories in display-name order.
func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Where("is_active = ?", true).Order("category_name").Find(&categories).Error
	if err != nil {
		return nil, storeErr(err, "Fetching categories")
	}
	return categories, nil
}

// GetCategory returns one category by id.
func GetCategory(db *gorm.DB, id string) (*models.Category, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindCategory(db, id)
}

// UpdateCategory applies a partial update. Only supplied fields are touched
// and only altered fields appear in the ledger diff.
func UpdateCategory(db *gorm.DB, actor types.Actor, id string, in CategoryUpdate) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	category, err := FindCategory(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.CategoryName != nil && *in.CategoryName != category.CategoryName {
		norm := normalizeName(*in.CategoryName)
		if norm == "" {
			return nil, types.BadRequest("Category name is required")
		}
		if norm != category.CategoryNameNormalized {
			var other models.Category
			err := db.Where("category_name_normalized = ? AND is_active = ? AND id <> ?", norm, true, category.ID).
				First(&other).Error
			if err == nil {
				return nil, types.Conflict("Category already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, storeErr(err, "Fetching category")
			}
		}
		updates["category_name"] = *in.CategoryName
		updates["category_name_normalized"] = norm
		changes["categoryName"] = Change{From: category.CategoryName, To: *in.CategoryName}
		category.CategoryName = *in.CategoryName
		category.CategoryNameNormalized = norm
	}

	if len(updates) == 0 {
		return category, nil
	}
	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating category")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntityCategory,
		EntityID:    category.ID,
		EntityName:  category.CategoryName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Category %q edited", category.CategoryName),
	})
	return category, nil
}

// DeleteCategory soft-deletes a category. Deleting an already-inactive
// category fails; inactive is terminal.
func DeleteCategory(db *gorm.DB, actor types.Actor, id string) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	category, err := FindCategory(db, id)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, types.InvalidState("Category already deleted")
	}

	updates := map[string]interface{}{
		"is_active":                false,
		"category_name_normalized": retireName(category.CategoryNameNormalized, category.ID),
	}
	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting category")
	}
	category.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntityCategory,
		EntityID:   category.ID,
		EntityName: category.CategoryName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Category %q removed", category.CategoryName),
	})
	return category, nil
}
