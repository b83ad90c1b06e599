// flex_list.go
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

package types

import (
	"encoding/json"
	"fmt"
)

// FlexList is a slice that can be unmarshaled from either a JSON array or a
// single JSON value. Bulk endpoints accept both `"item_ids": ["a","b"]` and
// `"item_ids": "a"` from older clients.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}

	// Try unmarshaling as an array first
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	// Fall back to a single element
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("FlexList: expected array or single value: %w", err)
	}
	*f = []T{single}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexList[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]T(f))
}

// Slice converts FlexList back to a plain slice.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}
