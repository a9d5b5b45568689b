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

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticleID indicates an article number outside 1..999.
	ErrInvalidArticleID = errors.New("invalid article number")

	// ErrEmptyTitle indicates a catalog entry with an empty title.
	ErrEmptyTitle = errors.New("article title cannot be empty")

	// ErrEmptyQuote indicates a quote with empty text.
	ErrEmptyQuote = errors.New("quote text cannot be empty")

	// ErrInvalidCatalog indicates a Catalog failed validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
