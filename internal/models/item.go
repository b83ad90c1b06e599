package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is the central inventory entity. The serial number is derived at
// creation time from the acquisition year, the sub-category abbreviation and
// the sub-category's counter (see services.AllocateSerials); it is never
// edited directly.
type Item struct {
	ID                    string     `gorm:"primaryKey;type:char(36)" json:"_id"`
	ItemName              string     `gorm:"size:255;not null;index" json:"itemName"`
	ItemDescription       string     `gorm:"size:1024" json:"itemDescription"`
	ItemModelNumberOrMake string     `gorm:"size:255" json:"itemModelNumberOrMake"`
	ItemAcquiredDate      time.Time  `gorm:"not null" json:"itemAcquiredDate"`
	ItemCost              float64    `gorm:"not null" json:"itemCost"`
	ItemStatusID          string     `gorm:"size:16" json:"itemStatusId"`
	ItemStatus            string     `gorm:"size:32;not null" json:"itemStatus"`
	ItemSourceID          string     `gorm:"size:16" json:"itemSourceId"`
	ItemSource            string     `gorm:"size:32;not null" json:"itemSource"`
	ItemSerialNumber      string     `gorm:"size:64;index" json:"itemSerialNumber"`
	ItemRemark            string     `gorm:"size:1024" json:"itemRemark,omitempty"`
	CategoryID            string     `gorm:"column:item_category_id;type:char(36);not null;index" json:"itemCategory"`
	SubCategoryID         string     `gorm:"column:item_sub_category_id;type:char(36);not null;index" json:"itemSubCategory"`
	FloorID               string     `gorm:"column:item_floor_id;type:char(36);not null;index" json:"itemFloor"`
	RoomID                string     `gorm:"column:item_room_id;type:char(36);not null;index" json:"itemRoom"`
	IsActive              bool       `gorm:"not null;default:true" json:"isActive"`
	DeactivatedAt         *time.Time `json:"deactivatedAt,omitempty"`
	CreatedBy             string     `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"index:idx_items_updated_at" json:"updatedAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "items"
}
