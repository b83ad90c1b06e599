package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Floor is a building level that rooms belong to.
type Floor struct {
	ID                  string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	FloorName           string    `gorm:"size:255;not null" json:"floorName"`
	FloorNameNormalized string    `gorm:"size:300;uniqueIndex" json:"-"`
	IsActive            bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy           string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// RoomType classifies rooms (e.g. Lab, Office, Store).
type RoomType struct {
	ID                     string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	RoomTypeName           string    `gorm:"size:255;not null" json:"roomTypeName"`
	RoomTypeNameNormalized string    `gorm:"size:300;uniqueIndex" json:"-"`
	IsActive               bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy              string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Room holds items. A room always belongs to exactly one floor; the item's
// floor reference is derived from its room, never supplied independently.
type Room struct {
	ID                 string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	RoomName           string    `gorm:"size:255;not null" json:"roomName"`
	RoomNameNormalized string    `gorm:"size:300;uniqueIndex" json:"-"`
	FloorID            string    `gorm:"type:char(36);index" json:"floor"`
	RoomTypeID         string    `gorm:"type:char(36);index" json:"roomType"`
	AllottedTo         string    `gorm:"size:255" json:"allottedTo,omitempty"`
	IsActive           bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy          string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (f *Floor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (r *RoomType) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Floor
func (Floor) TableName() string {
	return "floors"
}

// TableName overrides the table name for RoomType
func (RoomType) TableName() string {
	return "room_types"
}

// TableName overrides the table name for Room
func (Room) TableName() string {
	return "rooms"
}
