// reports.go
//
// A scalable, high performance drop-in replacement for the campus inventory nodejs service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of assetdb.
// assetdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// assetdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with assetdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/registry"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ItemFilter narrows the item listing. Each dimension is optional; "" and
// the "0" sentinel both leave it unfiltered.
type ItemFilter struct {
	Category    string
	SubCategory string
	Floor       string
	Room        string
	StatusID    string
	SourceID    string
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ItemRow is one denormalized listing row: the item plus the display names
// of everything it references.
type ItemRow struct {
	ID                    string     `gorm:"column:id" json:"_id"`
	ItemName              string     `gorm:"column:item_name" json:"itemName"`
	ItemDescription       string     `gorm:"column:item_description" json:"itemDescription"`
	ItemModelNumberOrMake string     `gorm:"column:item_model_number_or_make" json:"itemModelNumberOrMake"`
	ItemAcquiredDate      time.Time  `gorm:"column:item_acquired_date" json:"itemAcquiredDate"`
	ItemCost              float64    `gorm:"column:item_cost" json:"itemCost"`
	ItemStatusID          string     `gorm:"column:item_status_id" json:"itemStatusId"`
	ItemStatus            string     `gorm:"column:item_status" json:"itemStatus"`
	ItemSourceID          string     `gorm:"column:item_source_id" json:"itemSourceId"`
	ItemSource            string     `gorm:"column:item_source" json:"itemSource"`
	ItemSerialNumber      string     `gorm:"column:item_serial_number" json:"itemSerialNumber"`
	ItemRemark            string     `gorm:"column:item_remark" json:"itemRemark,omitempty"`
	CategoryID            string     `gorm:"column:item_category_id" json:"itemCategory"`
	CategoryName          string     `gorm:"column:category_name" json:"categoryName"`
	SubCategoryID         string     `gorm:"column:item_sub_category_id" json:"itemSubCategory"`
	SubCategoryName       string     `gorm:"column:sub_category_name" json:"subCategoryName"`
	FloorID               string     `gorm:"column:item_floor_id" json:"itemFloor"`
	FloorName             string     `gorm:"column:floor_name" json:"floorName"`
	RoomID                string     `gorm:"column:item_room_id" json:"itemRoom"`
	RoomName              string     `gorm:"column:room_name" json:"roomName"`
	IsActive              bool       `gorm:"column:is_active" json:"isActive"`
	DeactivatedAt         *time.Time `gorm:"column:deactivated_at" json:"deactivatedAt,omitempty"`
	CreatedBy             string     `gorm:"column:created_by" json:"createdBy"`
	CreatedByName         string     `gorm:"column:created_by_name" json:"createdByName"`
	CreatedAt             time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// ItemPage is one page of the denormalized item listing.
type ItemPage struct {
	TotalItems int64     `json:"totalItems"`
	Items      []ItemRow `json:"items"`
}

func itemListingQuery(db *gorm.DB, f ItemFilter) *gorm.DB {
	q := db.Table("items").
		Select(`items.*,
			categories.category_name AS category_name,
			sub_categories.sub_category_name AS sub_category_name,
			floors.floor_name AS floor_name,
			rooms.room_name AS room_name,
			users.username AS created_by_name`).
		Joins("LEFT JOIN categories ON categories.id = items.item_category_id").
		Joins("LEFT JOIN sub_categories ON sub_categories.id = items.item_sub_category_id").
		Joins("LEFT JOIN floors ON floors.id = items.item_floor_id").
		Joins("LEFT JOIN rooms ON rooms.id = items.item_room_id").
		Joins("LEFT JOIN users ON users.id = items.created_by").
		Where("items.is_active = ?", true)

	q = setFilter(q, "items.item_category_id", f.Category)
	q = setFilter(q, "items.item_sub_category_id", f.SubCategory)
	q = setFilter(q, "items.item_floor_id", f.Floor)
	q = setFilter(q, "items.item_room_id", f.Room)
	q = setFilter(q, "items.item_status_id", f.StatusID)
	q = setFilter(q, "items.item_source_id", f.SourceID)
	if f.Search != "" {
		q = q.Where("items.item_name LIKE ? OR items.item_serial_number LIKE ?", "%"+f.Search+"%", "%"+f.Search+"%")
	}
	if f.StartDate != nil {
		q = q.Where("items.item_acquired_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("items.item_acquired_date <= ?", *f.EndDate)
	}
	return q
}

// ListItems returns one page of the filtered item listing, most recently
// updated first. An empty match is a valid zero-valued page.
func ListItems(db *gorm.DB, f ItemFilter, page int) (*ItemPage, error) {
	var total int64
	if err := itemListingQuery(db, f).Count(&total).Error; err != nil {
		return nil, storeErr(err, "Fetching items")
	}
	if total == 0 {
		return &ItemPage{TotalItems: 0, Items: []ItemRow{}}, nil
	}

	// MySQL is the only dialect that understands the index hint.
	pageDB := db
	if db.Dialector.Name() == "mysql" {
		pageDB = db.Clauses(hints.UseIndex("idx_items_updated_at"))
	}

	var rows []ItemRow
	err := itemListingQuery(pageDB, f).
		Order("items.updated_at DESC").
		Offset(offsetFor(page)).
		Limit(PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching items")
	}
	return &ItemPage{TotalItems: total, Items: rows}, nil
}

// ExportItems returns every row matching the filter, unpaginated, for the
// CSV export surface.
func ExportItems(db *gorm.DB, f ItemFilter) ([]ItemRow, error) {
	var rows []ItemRow
	err := itemListingQuery(db, f).Order("items.updated_at DESC").Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching items")
	}
	if rows == nil {
		rows = []ItemRow{}
	}
	return rows, nil
}

// StatusCounts is the status distribution of active items.
type StatusCounts struct {
	Working    int64 `json:"working"`
	Repairable int64 `json:"repairable"`
	NotWorking int64 `json:"notWorking"`
}

// SourceCounts is the acquisition-source distribution of active items.
type SourceCounts struct {
	Purchase int64 `json:"purchase"`
	Donation int64 `json:"donation"`
}

// InventoryStats is the dashboard summary. All fields are zero-initialized;
// an empty store yields an all-zero summary, never an error.
type InventoryStats struct {
	TotalItems      int64        `json:"totalItems"`
	ActiveLastMonth int64        `json:"activeLastMonth"`
	Status          StatusCounts `json:"status"`
	Source          SourceCounts `json:"source"`
}

type groupCount struct {
	Key   string `gorm:"column:group_key"`
	Count int64  `gorm:"column:group_count"`
}

// monthStart returns the first instant of the current month, the cutoff for
// the "active as of end of last month" snapshot.
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// GetInventoryStats computes the dashboard summary: total active items, the
// status and source distributions, and the point-in-time count of items that
// were active at the end of last month (active now, or deactivated after the
// month boundary).
func GetInventoryStats(db *gorm.DB) (*InventoryStats, error) {
	stats := &InventoryStats{}

	if err := db.Model(&models.Item{}).Where("is_active = ?", true).Count(&stats.TotalItems).Error; err != nil {
		return nil, storeErr(err, "Fetching item stats")
	}

	cutoff := monthStart(time.Now())
	err := db.Model(&models.Item{}).
		Where("is_active = ? OR deactivated_at > ?", true, cutoff).
		Count(&stats.ActiveLastMonth).Error
	if err != nil {
		return nil, storeErr(err, "Fetching item stats")
	}

	var byStatus []groupCount
	err = db.Model(&models.Item{}).
		Select("item_status AS group_key, COUNT(*) AS group_count").
		Where("is_active = ?", true).
		Group("item_status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, storeErr(err, "Fetching item stats")
	}
	for _, g := range byStatus {
		switch g.Key {
		case registry.StatusWorking:
			stats.Status.Working = g.Count
		case registry.StatusRepairable:
			stats.Status.Repairable = g.Count
		case registry.StatusNotWorking:
			stats.Status.NotWorking = g.Count
		}
	}

	var bySource []groupCount
	err = db.Model(&models.Item{}).
		Select("item_source AS group_key, COUNT(*) AS group_count").
		Where("is_active = ?", true).
		Group("item_source").
		Scan(&bySource).Error
	if err != nil {
		return nil, storeErr(err, "Fetching item stats")
	}
	for _, g := range bySource {
		switch g.Key {
		case registry.SourcePurchase:
			stats.Source.Purchase = g.Count
		case registry.SourceDonation:
			stats.Source.Donation = g.Count
		}
	}

	return stats, nil
}

// CategoryCount is one per-category rollup row.
type CategoryCount struct {
	CategoryID   string `gorm:"column:item_category_id" json:"categoryId"`
	CategoryName string `gorm:"column:category_name" json:"categoryName"`
	ItemCount    int64  `gorm:"column:item_count" json:"itemCount"`
}

// CategoryRollupPage is one page of the per-category rollup.
type CategoryRollupPage struct {
	TotalCategories int64           `json:"totalCategories"`
	Categories      []CategoryCount `json:"categories"`
}

// GetCategoryRollup counts active items per category, paged like the item
// listing.
func GetCategoryRollup(db *gorm.DB, page int) (*CategoryRollupPage, error) {
	var total int64
	err := db.Table("items").
		Where("items.is_active = ?", true).
		Distinct("items.item_category_id").
		Count(&total).Error
	if err != nil {
		return nil, storeErr(err, "Counting category stats")
	}

	var rows []CategoryCount
	err = db.Table("items").
		Select("items.item_category_id, categories.category_name, COUNT(*) AS item_count").
		Joins("LEFT JOIN categories ON categories.id = items.item_category_id").
		Where("items.is_active = ?", true).
		Group("items.item_category_id, categories.category_name").
		Order("item_count DESC").
		Offset(offsetFor(page)).Limit(PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching category stats")
	}
	if rows == nil {
		rows = []CategoryCount{}
	}
	return &CategoryRollupPage{TotalCategories: total, Categories: rows}, nil
}

// RoomCount is one per-room rollup row.
type RoomCount struct {
	RoomID    string `gorm:"column:item_room_id" json:"roomId"`
	RoomName  string `gorm:"column:room_name" json:"roomName"`
	FloorName string `gorm:"column:floor_name" json:"floorName"`
	ItemCount int64  `gorm:"column:item_count" json:"itemCount"`
}

// RoomRollupPage is one page of the per-room rollup.
type RoomRollupPage struct {
	TotalRooms int64       `json:"totalRooms"`
	Rooms      []RoomCount `json:"rooms"`
}

// GetRoomRollup counts active items per room, paged like the item listing.
func GetRoomRollup(db *gorm.DB, page int) (*RoomRollupPage, error) {
	var total int64
	err := db.Table("items").
		Where("items.is_active = ?", true).
		Distinct("items.item_room_id").
		Count(&total).Error
	if err != nil {
		return nil, storeErr(err, "Counting room stats")
	}

	var rows []RoomCount
	err = db.Table("items").
		Select("items.item_room_id, rooms.room_name, floors.floor_name, COUNT(*) AS item_count").
		Joins("LEFT JOIN rooms ON rooms.id = items.item_room_id").
		Joins("LEFT JOIN floors ON floors.id = items.item_floor_id").
		Where("items.is_active = ?", true).
		Group("items.item_room_id, rooms.room_name, floors.floor_name").
		Order("item_count DESC").
		Offset(offsetFor(page)).Limit(PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching room stats")
	}
	if rows == nil {
		rows = []RoomCount{}
	}
	return &RoomRollupPage{TotalRooms: total, Rooms: rows}, nil
}

// CommonItemGroup is one name+category+model grouping with per-status
// sub-counts.
type CommonItemGroup struct {
	ItemName              string `gorm:"column:item_name" json:"itemName"`
	CategoryID            string `gorm:"column:item_category_id" json:"categoryId"`
	CategoryName          string `gorm:"column:category_name" json:"categoryName"`
	ItemModelNumberOrMake string `gorm:"column:item_model_number_or_make" json:"itemModelNumberOrMake"`
	TotalCount            int64  `gorm:"column:total_count" json:"totalCount"`
	WorkingCount          int64  `gorm:"column:working_count" json:"workingCount"`
	RepairableCount       int64  `gorm:"column:repairable_count" json:"repairableCount"`
	NotWorkingCount       int64  `gorm:"column:not_working_count" json:"notWorkingCount"`
}

// GetCommonItems groups active items that share a name, category and model,
// with the status breakdown of each group. A category id narrows the report
// to that category.
func GetCommonItems(db *gorm.DB, categoryID string) ([]CommonItemGroup, error) {
	q := db.Table("items")
	if categoryID != "" && categoryID != FilterUnset {
		id, err := ParseID(categoryID)
		if err != nil {
			return nil, err
		}
		q = q.Where("items.item_category_id = ?", id)
	}
	var rows []CommonItemGroup
	err := q.
		Select(`items.item_name,
			items.item_category_id,
			categories.category_name,
			items.item_model_number_or_make,
			COUNT(*) AS total_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS working_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS repairable_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS not_working_count`,
			registry.StatusWorking, registry.StatusRepairable, registry.StatusNotWorking).
		Joins("LEFT JOIN categories ON categories.id = items.item_category_id").
		Where("items.is_active = ?", true).
		Group("items.item_name, items.item_category_id, categories.category_name, items.item_model_number_or_make").
		Order("total_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching common items")
	}
	if rows == nil {
		rows = []CommonItemGroup{}
	}
	return rows, nil
}

// ScopedStatusStats is the status distribution of the active items inside one
// category or room.
type ScopedStatusStats struct {
	TotalItems int64        `json:"totalItems"`
	Status     StatusCounts `json:"status"`
}

// ScopedSourceStats is the acquisition-source distribution of a slice of the
// active items.
type ScopedSourceStats struct {
	TotalItems int64        `json:"totalItems"`
	Source     SourceCounts `json:"source"`
}

type statusTally struct {
	Total      int64 `gorm:"column:total_count"`
	Working    int64 `gorm:"column:working_count"`
	Repairable int64 `gorm:"column:repairable_count"`
	NotWorking int64 `gorm:"column:not_working_count"`
}

func tallyStatuses(db *gorm.DB, column, id string) (*ScopedStatusStats, error) {
	var row statusTally
	err := db.Model(&models.Item{}).
		Select(`COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN item_status = ? THEN 1 ELSE 0 END), 0) AS working_count,
			COALESCE(SUM(CASE WHEN item_status = ? THEN 1 ELSE 0 END), 0) AS repairable_count,
			COALESCE(SUM(CASE WHEN item_status = ? THEN 1 ELSE 0 END), 0) AS not_working_count`,
			registry.StatusWorking, registry.StatusRepairable, registry.StatusNotWorking).
		Where("is_active = ?", true).
		Where(column+" = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, storeErr(err, "Fetching status stats")
	}
	return &ScopedStatusStats{
		TotalItems: row.Total,
		Status: StatusCounts{
			Working:    row.Working,
			Repairable: row.Repairable,
			NotWorking: row.NotWorking,
		},
	}, nil
}

// GetCategoryStatusStats computes the status distribution of one category's
// active items.
func GetCategoryStatusStats(db *gorm.DB, categoryID string) (*ScopedStatusStats, error) {
	categoryID, err := ParseID(categoryID)
	if err != nil {
		return nil, err
	}
	category, err := FindCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	return tallyStatuses(db, "item_category_id", category.ID)
}

// GetRoomStatusStats computes the status distribution of one room's active
// items.
func GetRoomStatusStats(db *gorm.DB, roomID string) (*ScopedStatusStats, error) {
	roomID, err := ParseID(roomID)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	return tallyStatuses(db, "item_room_id", room.ID)
}

// GetCategoryAcquisitionStats computes the acquisition-source distribution of
// one category's active items. An empty or "0" category id widens the report
// to every category.
func GetCategoryAcquisitionStats(db *gorm.DB, categoryID string) (*ScopedSourceStats, error) {
	q := db.Model(&models.Item{}).Where("is_active = ?", true)
	if categoryID != "" && categoryID != FilterUnset {
		id, err := ParseID(categoryID)
		if err != nil {
			return nil, err
		}
		category, err := FindCategory(db, id)
		if err != nil {
			return nil, err
		}
		q = q.Where("item_category_id = ?", category.ID)
	}

	var row struct {
		Total    int64 `gorm:"column:total_count"`
		Purchase int64 `gorm:"column:purchase_count"`
		Donation int64 `gorm:"column:donation_count"`
	}
	err := q.
		Select(`COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN item_source = ? THEN 1 ELSE 0 END), 0) AS purchase_count,
			COALESCE(SUM(CASE WHEN item_source = ? THEN 1 ELSE 0 END), 0) AS donation_count`,
			registry.SourcePurchase, registry.SourceDonation).
		Scan(&row).Error
	if err != nil {
		return nil, storeErr(err, "Fetching acquisition stats")
	}
	return &ScopedSourceStats{
		TotalItems: row.Total,
		Source: SourceCounts{
			Purchase: row.Purchase,
			Donation: row.Donation,
		},
	}, nil
}

// RoomItemDetail is one name+model grouping of a room's active items with the
// status breakdown of the group.
type RoomItemDetail struct {
	ItemName              string `gorm:"column:item_name" json:"itemName"`
	ItemModelNumberOrMake string `gorm:"column:item_model_number_or_make" json:"itemModelNumberOrMake"`
	ItemDescription       string `gorm:"column:item_description" json:"itemDescription"`
	CategoryID            string `gorm:"column:item_category_id" json:"categoryId"`
	CategoryName          string `gorm:"column:category_name" json:"categoryName"`
	SubCategoryID         string `gorm:"column:item_sub_category_id" json:"subCategoryId"`
	SubCategoryName       string `gorm:"column:sub_category_name" json:"subCategoryName"`
	TotalCount            int64  `gorm:"column:total_count" json:"totalCount"`
	WorkingCount          int64  `gorm:"column:working_count" json:"workingCount"`
	RepairableCount       int64  `gorm:"column:repairable_count" json:"repairableCount"`
	NotWorkingCount       int64  `gorm:"column:not_working_count" json:"notWorkingCount"`
}

// GetRoomItemDetails groups one room's active items by name and model. The
// descriptive columns come from an arbitrary member of each group, which is
// harmless because grouped items are interchangeable units.
func GetRoomItemDetails(db *gorm.DB, roomID string) ([]RoomItemDetail, error) {
	roomID, err := ParseID(roomID)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, roomID)
	if err != nil {
		return nil, err
	}

	var rows []RoomItemDetail
	err = db.Table("items").
		Select(`items.item_name,
			items.item_model_number_or_make,
			MIN(items.item_description) AS item_description,
			MIN(items.item_category_id) AS item_category_id,
			MIN(categories.category_name) AS category_name,
			MIN(items.item_sub_category_id) AS item_sub_category_id,
			MIN(sub_categories.sub_category_name) AS sub_category_name,
			COUNT(*) AS total_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS working_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS repairable_count,
			SUM(CASE WHEN items.item_status = ? THEN 1 ELSE 0 END) AS not_working_count`,
			registry.StatusWorking, registry.StatusRepairable, registry.StatusNotWorking).
		Joins("LEFT JOIN categories ON categories.id = items.item_category_id").
		Joins("LEFT JOIN sub_categories ON sub_categories.id = items.item_sub_category_id").
		Where("items.item_room_id = ? AND items.is_active = ?", room.ID, true).
		Group("items.item_name, items.item_model_number_or_make").
		Order("total_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err, "Fetching room item details")
	}
	if rows == nil {
		rows = []RoomItemDetail{}
	}
	return rows, nil
}

// GetItemInstancesInRoom lists the individual items behind one of the room's
// name+model groupings, deleted units included so serial history stays
// visible.
func GetItemInstancesInRoom(db *gorm.DB, name, model, roomID string) ([]models.Item, error) {
	roomID, err := ParseID(roomID)
	if err != nil {
		return nil, err
	}
	room, err := FindRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, types.BadRequest("Item name is required")
	}

	var items []models.Item
	err = db.Where("item_name = ? AND item_model_number_or_make = ? AND item_room_id = ?",
		name, model, room.ID).
		Order("item_serial_number").
		Find(&items).Error
	if err != nil {
		return nil, storeErr(err, "Fetching item instances")
	}
	return items, nil
}

// GetSimilarItems returns the active items sharing the given item's name,
// category and model, the item itself included.
func GetSimilarItems(db *gorm.DB, itemID string) ([]models.Item, error) {
	itemID, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}
	item, err := FindItem(db, itemID)
	if err != nil {
		return nil, err
	}

	var items []models.Item
	err = db.Where("item_name = ? AND item_category_id = ? AND item_model_number_or_make = ? AND is_active = ?",
		item.ItemName, item.CategoryID, item.ItemModelNumberOrMake, true).
		Order("item_serial_number").
		Find(&items).Error
	if err != nil {
		return nil, storeErr(err, "Fetching similar items")
	}
	return items, nil
}
