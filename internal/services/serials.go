// serials.go
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
	"errors"
	"fmt"
	"time"

	"github.com/campuskit/assetdb/internal/models"
	"github.com/campuskit/assetdb/internal/types"
	"gorm.io/gorm"
)

// maxSerialRetries bounds the optimistic-update loop under contention.
const maxSerialRetries = 8

// FormatSerial renders one serial number: calendar year, sub-category
// abbreviation, then the sequence zero-padded to three digits. The padding
// widens naturally past 999.
func FormatSerial(year int, abbreviation string, sequence uint64) string {
	return fmt.Sprintf("%d%s%03d", year, abbreviation, sequence)
}

// SerialBatch is the result of one successful allocation: the half-open
// counter window (Start, End] and the rendered serials, in order.
type SerialBatch struct {
	Start   uint64
	End     uint64
	Serials []string
}

// AllocateSerials reserves count consecutive sequence numbers on the
// sub-category's counter and returns the rendered serials. The reservation is
// a conditional update: the counter is advanced only if it still holds the
// value that was read, so two concurrent allocations can never hand out the
// same sequence. Lost races are retried with a fresh read.
func AllocateSerials(db *gorm.DB, subCategoryID string, count int, year int) (*SerialBatch, error) {
	if count < 1 {
		return nil, types.BadRequest("Item count must be at least 1")
	}

	for attempt := 0; attempt < maxSerialRetries; attempt++ {
		var sc models.SubCategory
		err := db.Where("id = ?", subCategoryID).First(&sc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NotFound("Sub-category not found")
			}
			return nil, storeErr(err, "Fetching sub-category")
		}

		current := sc.LastItemSerialNumber
		res := db.Model(&models.SubCategory{}).
			Where("id = ? AND last_item_serial_number = ?", sc.ID, current).
			Update("last_item_serial_number", current+uint64(count))
		if res.Error != nil {
			return nil, storeErr(res.Error, "Updating serial counter")
		}
		if res.RowsAffected == 0 {
			// Another allocator won the window; re-read and try again.
			continue
		}

		batch := &SerialBatch{Start: current, End: current + uint64(count)}
		batch.Serials = make([]string, 0, count)
		for seq := current + 1; seq <= current+uint64(count); seq++ {
			batch.Serials = append(batch.Serials, FormatSerial(year, sc.SubCategoryAbbreviation, seq))
		}
		return batch, nil
	}

	return nil, types.Internal("Serial allocation failed after %d attempts", maxSerialRetries)
}

// NextSerialForMove allocates one sequence number on the target sub-category
// and renders a serial that keeps the item's original year prefix. The source
// sub-category's counter is left untouched.
func NextSerialForMove(db *gorm.DB, item *models.Item, targetSubCategoryID string) (string, error) {
	yearPrefix := ""
	if len(item.ItemSerialNumber) >= 4 {
		yearPrefix = item.ItemSerialNumber[:4]
	} else {
		yearPrefix = fmt.Sprintf("%d", time.Now().Year())
	}

	for attempt := 0; attempt < maxSerialRetries; attempt++ {
		var sc models.SubCategory
		err := db.Where("id = ?", targetSubCategoryID).First(&sc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", types.NotFound("Sub-category not found")
			}
			return "", storeErr(err, "Fetching sub-category")
		}

		current := sc.LastItemSerialNumber
		res := db.Model(&models.SubCategory{}).
			Where("id = ? AND last_item_serial_number = ?", sc.ID, current).
			Update("last_item_serial_number", current+1)
		if res.Error != nil {
			return "", storeErr(res.Error, "Updating serial counter")
		}
		if res.RowsAffected == 0 {
			continue
		}

		return fmt.Sprintf("%s%s%03d", yearPrefix, sc.SubCategoryAbbreviation, current+1), nil
	}

	return "", types.Internal("Serial allocation failed after %d attempts", maxSerialRetries)
}
