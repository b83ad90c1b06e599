package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// Change records a single field transition inside a ledger entry.
type Change struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// LedgerEntry is the input to AppendActivity. Changes must contain only the
// fields that were actually altered by the operation being recorded.
type LedgerEntry struct {
	Action      string
	EntityType  string
	EntityID    string
	EntityName  string
	Actor       types.Actor
	Changes     map[string]Change
	Description string
}

// AppendActivity writes one immutable audit record. The write is best-effort:
// a failing ledger must never block the primary mutation, so errors are
// logged and swallowed.
func AppendActivity(db *gorm.DB, entry LedgerEntry) {
	record := models.ActivityLog{
		Action:          entry.Action,
		EntityType:      entry.EntityType,
		EntityID:        entry.EntityID,
		EntityName:      entry.EntityName,
		Description:     entry.Description,
		PerformedBy:     entry.Actor.ID,
		PerformedByName: entry.Actor.Username,
		PerformedByRole: entry.Actor.Role,
	}

	if len(entry.Changes) > 0 {
		raw, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Printf("Error adding activity log: %v", err)
			return
		}
		record.Changes = raw
	}

	if err := db.Create(&record).Error; err != nil {
		log.Printf("Error adding activity log: %v", err)
	}
}

// LogFilter narrows a ledger query. Zero values leave a dimension unfiltered.
type LogFilter struct {
	EntityType string
	EntityID   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// LogPage is one page of ledger records, newest first.
type LogPage struct {
	TotalLogs int64                `json:"totalLogs"`
	Logs      []models.ActivityLog `json:"logs"`
}

// QueryLogs returns the total count and one page of matching records sorted
// newest-first. An empty result is a valid zero-valued page.
func QueryLogs(db *gorm.DB, filter LogFilter, page int) (*LogPage, error) {
	q := db.Model(&models.ActivityLog{})
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, storeErr(err, "Fetching logs")
	}
	if total == 0 {
		return &LogPage{TotalLogs: 0, Logs: []models.ActivityLog{}}, nil
	}

	var logs []models.ActivityLog
	if err := q.Order("created_at DESC").Offset(offsetFor(page)).Limit(PageSize).Find(&logs).Error; err != nil {
		return nil, storeErr(err, "Fetching logs")
	}
	return &LogPage{TotalLogs: total, Logs: logs}, nil
}

// RecentLogs returns the most recent limit records irrespective of any filter.
func RecentLogs(db *gorm.DB, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, storeErr(err, "Fetching logs")
	}
	return logs, nil
}

// EntityLogs returns every ledger record for one entity, newest first.
func EntityLogs(db *gorm.DB, entityType, entityID string) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, storeErr(err, "Fetching logs")
	}
	return logs, nil
}
