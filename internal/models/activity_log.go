package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entity types recorded in the activity ledger.
const (
	EntityItem        = "Item"
	EntityUser        = "User"
	EntityRoom        = "Room"
	EntityCategory    = "Category"
	EntityFloor       = "Floor"
	EntityRoomType    = "Roomtype"
	EntitySubCategory = "SubCategory"
)

// ActivityLog is an append-only audit record. EntityName and the performer
// fields are denormalized snapshots so the record survives later renames and
// deletions. Changes holds a {field: {from, to}} map as JSON.
type ActivityLog struct {
	ID              string         `gorm:"primaryKey;type:char(36)" json:"_id"`
	Action          string         `gorm:"size:64;not null" json:"action"`
	EntityType      string         `gorm:"size:32;not null;index:idx_activity_entity" json:"entityType"`
	EntityID        string         `gorm:"type:char(36);index:idx_activity_entity" json:"entityId"`
	EntityName      string         `gorm:"size:255" json:"entityName"`
	Description     string         `gorm:"size:1024" json:"description"`
	PerformedBy     string         `gorm:"type:char(36)" json:"performedBy"`
	PerformedByName string         `gorm:"size:255" json:"performedByName"`
	PerformedByRole string         `gorm:"size:32" json:"performedByRole"`
	Changes         datatypes.JSON `gorm:"type:json" json:"changes,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
