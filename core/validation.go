// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateHeader validates a catalog entry according to domain rules.
//
// Validation rules:
//   - Number must be in the accepted range (1..999)
//   - Title must not be empty
func ValidateHeader(h ArticleHeader) error {
	if !h.Number.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidArticleID, h.Number)
	}
	if h.Title == "" {
		return fmt.Errorf("%w: article %d", ErrEmptyTitle, h.Number)
	}
	return nil
}

// ValidateCatalog validates every entry of a catalog and checks that
// article numbers are unique. Duplicate numbers are a data-integrity fault
// and are reported, never silently deduplicated.
func ValidateCatalog(c Catalog) error {
	seen := make(map[ArticleID]bool, len(c))
	for _, h := range c {
		if err := ValidateHeader(h); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		if seen[h.Number] {
			return fmt.Errorf("%w: duplicate article number %d", ErrInvalidCatalog, h.Number)
		}
		seen[h.Number] = true
	}
	return nil
}

// ValidateQuote validates an extracted quote.
func ValidateQuote(q Quote) error {
	if q.Text == "" {
		return ErrEmptyQuote
	}
	return nil
}
