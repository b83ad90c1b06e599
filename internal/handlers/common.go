// common.go
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

package handlers

import (
	"time"

	"github.com/campuskit/assetdb/internal/services"
	"github.com/campuskit/assetdb/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseBody decodes and validates a JSON request body. Any decode or
// validation failure is a bad request; the raw validator text is safe to
// show because it only names fields and rules.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return types.BadRequest("Invalid request body")
	}
	if err := validate.Struct(dest); err != nil {
		return types.BadRequest("Validation failed: %v", err)
	}
	return nil
}

// pageParam reads the 1-based page query parameter.
func pageParam(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// dateParam parses an optional date query parameter, accepting a plain date
// or RFC3339. The "0" sentinel and empty string both mean unset.
func dateParam(c *fiber.Ctx, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" || raw == "0" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// itemFilterFromQuery assembles the listing filter from query parameters.
func itemFilterFromQuery(c *fiber.Ctx) services.ItemFilter {
	return services.ItemFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		Floor:       c.Query("floor"),
		Room:        c.Query("room"),
		StatusID:    c.Query("status"),
		SourceID:    c.Query("source"),
		Search:      c.Query("search"),
		StartDate:   dateParam(c, "startDate"),
		EndDate:     dateParam(c, "endDate"),
	}
}
