package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups items at the top level (e.g. Electronics, Furniture).
type Category struct {
	ID                     string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	CategoryName           string    `gorm:"size:255;not null" json:"categoryName"`
	CategoryNameNormalized string    `gorm:"size:300;uniqueIndex" json:"-"`
	IsActive               bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy              string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// SubCategory is a category subdivision and the scope of serial allocation.
// LastItemSerialNumber is the allocation high-water mark: it only ever
// increases, even when items are deleted.
type SubCategory struct {
	ID                                string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	SubCategoryName                   string    `gorm:"size:255;not null" json:"subCategoryName"`
	SubCategoryAbbreviation           string    `gorm:"size:32" json:"subCategoryAbbreviation"`
	SubCategoryNameNormalized         string    `gorm:"size:300;uniqueIndex" json:"-"`
	SubCategoryAbbreviationNormalized string    `gorm:"size:80;uniqueIndex" json:"-"`
	CategoryID                        string    `gorm:"type:char(36);index" json:"category"`
	LastItemSerialNumber              uint64    `gorm:"not null;default:0" json:"lastItemSerialNumber"`
	IsActive                          bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy                         string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt                         time.Time `json:"createdAt"`
	UpdatedAt                         time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (s *SubCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for SubCategory
func (SubCategory) TableName() string {
	return "sub_categories"
}
