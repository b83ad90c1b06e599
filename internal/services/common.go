package services

import (
	"errors"
	"strings"

	"github.com/campuskit/assetdb/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed page length for every paginated listing.
const PageSize = 6

// FilterUnset is the sentinel callers pass for a filter dimension they do not
// want applied.
const FilterUnset = "0"

// ParseID validates an entity id. Ids are uuid-shaped strings; anything else
// is a bad request, reported before any store access.
func ParseID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return "", types.BadRequest("Invalid id: %s", id)
	}
	return id, nil
}

// ParseIDs validates a list of entity ids, failing fast on the first bad one.
func ParseIDs(ids []string) ([]string, error) {
	parsed := make([]string, 0, len(ids))
	for _, id := range ids {
		p, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// normalizeName produces the case-folded form used for uniqueness checks.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// retireName returns the normalized-name value stored on soft delete. The id
// suffix keeps the unique index satisfied among deleted rows while freeing
// the plain normalized form for reuse.
func retireName(norm, id string) string {
	return norm + "#" + id
}

// offsetFor converts a 1-based page number to a row offset.
func offsetFor(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// storeErr classifies a store-layer failure. Duplicate-key violations become
// conflicts (the backstop for concurrent create races on normalized names);
// everything else is internal and its text stays server-side.
func storeErr(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.Conflict("%s", message+" already exists")
	}
	return types.Internal("%s", message+" unsuccessful")
}

// setFilter applies WHERE column = value only when value carries a real
// filter (not empty, not the unset sentinel).
func setFilter(q *gorm.DB, column, value string) *gorm.DB {
	if value != "" && value != FilterUnset {
		q = q.Where(column+" = ?", value)
	}
	return q
}
