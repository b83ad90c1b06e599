package services

import (
	"errors"
	"fmt"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// SubCategoryInput carries the fields accepted when creating a sub-category.
type SubCategoryInput struct {
	SubCategoryName         string `json:"subCategoryName" validate:"required,max=255"`
	SubCategoryAbbreviation string `json:"subCategoryAbbreviation" validate:"required,max=32"`
	Category                string `json:"category" validate:"required"`
}

// SubCategoryUpdate carries the optional fields of a partial update.
type SubCategoryUpdate struct {
	SubCategoryName         *string `json:"subCategoryName" validate:"omitempty,max=255"`
	SubCategoryAbbreviation *string `json:"subCategoryAbbreviation" validate:"omitempty,max=32"`
	Category                *string `json:"category"`
}

// Name and abbreviation uniqueness is global across all categories, not
// scoped to the parent. That mirrors the frontend contract this service
// replaces; do not narrow it without product sign-off.
func subCategoryNameTaken(db *gorm.DB, norm, excludeID string) (bool, error) {
	q := db.Where("sub_category_name_normalized = ? AND is_active = ?", norm, true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var existing models.SubCategory
	err := q.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, storeErr(err, "Fetching sub-category")
}

func subCategoryAbbrTaken(db *gorm.DB, norm, excludeID string) (bool, error) {
	q := db.Where("sub_category_abbreviation_normalized = ? AND is_active = ?", norm, true)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var existing models.SubCategory
	err := q.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, storeErr(err, "Fetching sub-category")
}

// CreateSubCategory adds a sub-category under an existing category. The
// serial counter starts at zero and only ever moves forward from there.
func CreateSubCategory(db *gorm.DB, actor types.Actor, in SubCategoryInput) (*models.SubCategory, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	nameNorm := normalizeName(in.SubCategoryName)
	abbrNorm := normalizeName(in.SubCategoryAbbreviation)
	if nameNorm == "" || abbrNorm == "" {
		return nil, types.BadRequest("Sub-category name and abbreviation are required")
	}

	categoryID, err := ParseID(in.Category)
	if err != nil {
		return nil, err
	}
	category, err := FindCategory(db, categoryID)
	if err != nil {
		return nil, err
	}

	if taken, err := subCategoryNameTaken(db, nameNorm, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, types.Conflict("Sub-category already exists")
	}
	if taken, err := subCategoryAbbrTaken(db, abbrNorm, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, types.Conflict("Sub-category abbreviation already exists")
	}

	subCategory := models.SubCategory{
		SubCategoryName:                   in.SubCategoryName,
		SubCategoryAbbreviation:           in.SubCategoryAbbreviation,
		SubCategoryNameNormalized:         nameNorm,
		SubCategoryAbbreviationNormalized: abbrNorm,
		CategoryID:                        category.ID,
		LastItemSerialNumber:              0,
		IsActive:                          true,
		CreatedBy:                         actor.ID,
	}
	if err := db.Create(&subCategory).Error; err != nil {
		return nil, storeErr(err, "Adding sub-category")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "added",
		EntityType:  models.EntitySubCategory,
		EntityID:    subCategory.ID,
		EntityName:  subCategory.SubCategoryName,
		Actor:       actor,
		Description: fmt.Sprintf("Sub-category %q added under %q", subCategory.SubCategoryName, category.CategoryName),
	})
	return &subCategory, nil
}

// ListSubCategories returns active sub-categories, optionally narrowed to one
// category.
func ListSubCategories(db *gorm.DB, categoryID string) ([]models.SubCategory, error) {
	q := db.Where("is_active = ?", true)
	if categoryID != "" && categoryID != FilterUnset {
		id, err := ParseID(categoryID)
		if err != nil {
			return nil, err
		}
		q = q.Where("category_id = ?", id)
	}
	var subCategories []models.SubCategory
	if err := q.Order("sub_category_name").Find(&subCategories).Error; err != nil {
		return nil, storeErr(err, "Fetching sub-categories")
	}
	return subCategories, nil
}

// GetSubCategory returns one sub-category by id.
func GetSubCategory(db *gorm.DB, id string) (*models.SubCategory, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return FindSubCategory(db, id)
}

// UpdateSubCategory applies a partial update. The serial counter is never
// touched here; only AllocateSerials may advance it.
func UpdateSubCategory(db *gorm.DB, actor types.Actor, id string, in SubCategoryUpdate) (*models.SubCategory, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	subCategory, err := FindSubCategory(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	changes := map[string]Change{}

	if in.SubCategoryName != nil && *in.SubCategoryName != subCategory.SubCategoryName {
		norm := normalizeName(*in.SubCategoryName)
		if norm == "" {
			return nil, types.BadRequest("Sub-category name is required")
		}
		if norm != subCategory.SubCategoryNameNormalized {
			if taken, err := subCategoryNameTaken(db, norm, subCategory.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, types.Conflict("Sub-category already exists")
			}
		}
		updates["sub_category_name"] = *in.SubCategoryName
		updates["sub_category_name_normalized"] = norm
		changes["subCategoryName"] = Change{From: subCategory.SubCategoryName, To: *in.SubCategoryName}
		subCategory.SubCategoryName = *in.SubCategoryName
		subCategory.SubCategoryNameNormalized = norm
	}

	if in.SubCategoryAbbreviation != nil && *in.SubCategoryAbbreviation != subCategory.SubCategoryAbbreviation {
		norm := normalizeName(*in.SubCategoryAbbreviation)
		if norm == "" {
			return nil, types.BadRequest("Sub-category abbreviation is required")
		}
		if norm != subCategory.SubCategoryAbbreviationNormalized {
			if taken, err := subCategoryAbbrTaken(db, norm, subCategory.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, types.Conflict("Sub-category abbreviation already exists")
			}
		}
		updates["sub_category_abbreviation"] = *in.SubCategoryAbbreviation
		updates["sub_category_abbreviation_normalized"] = norm
		changes["subCategoryAbbreviation"] = Change{From: subCategory.SubCategoryAbbreviation, To: *in.SubCategoryAbbreviation}
		subCategory.SubCategoryAbbreviation = *in.SubCategoryAbbreviation
		subCategory.SubCategoryAbbreviationNormalized = norm
	}

	if in.Category != nil && *in.Category != subCategory.CategoryID {
		categoryID, err := ParseID(*in.Category)
		if err != nil {
			return nil, err
		}
		newCategory, err := FindCategory(db, categoryID)
		if err != nil {
			return nil, err
		}
		oldCategory, err := FindCategory(db, subCategory.CategoryID)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = newCategory.ID
		changes["category"] = Change{From: oldCategory.CategoryName, To: newCategory.CategoryName}
		subCategory.CategoryID = newCategory.ID
	}

	if len(updates) == 0 {
		return subCategory, nil
	}
	if err := db.Model(&models.SubCategory{}).Where("id = ?", subCategory.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Updating sub-category")
	}

	AppendActivity(db, LedgerEntry{
		Action:      "edited details",
		EntityType:  models.EntitySubCategory,
		EntityID:    subCategory.ID,
		EntityName:  subCategory.SubCategoryName,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("Sub-category %q edited", subCategory.SubCategoryName),
	})
	return subCategory, nil
}

// DeleteSubCategory soft-deletes a sub-category.
func DeleteSubCategory(db *gorm.DB, actor types.Actor, id string) (*models.SubCategory, error) {
	if !actor.IsAdmin() {
		return nil, types.Authorization("Admin access required")
	}
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	subCategory, err := FindSubCategory(db, id)
	if err != nil {
		return nil, err
	}
	if !subCategory.IsActive {
		return nil, types.InvalidState("Sub-category already deleted")
	}

	updates := map[string]interface{}{
		"is_active":                            false,
		"sub_category_name_normalized":         retireName(subCategory.SubCategoryNameNormalized, subCategory.ID),
		"sub_category_abbreviation_normalized": retireName(subCategory.SubCategoryAbbreviationNormalized, subCategory.ID),
	}
	if err := db.Model(&models.SubCategory{}).Where("id = ?", subCategory.ID).Updates(updates).Error; err != nil {
		return nil, storeErr(err, "Deleting sub-category")
	}
	subCategory.IsActive = false

	AppendActivity(db, LedgerEntry{
		Action:     "removed",
		EntityType: models.EntitySubCategory,
		EntityID:   subCategory.ID,
		EntityName: subCategory.SubCategoryName,
		Actor:      actor,
		Changes: map[string]Change{
			"isActive": {From: true, To: false},
		},
		Description: fmt.Sprintf("Sub-category %q removed", subCategory.SubCategoryName),
	})
	return subCategory, nil
}
