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


package corpus

import "errors"

var (
	// ErrStoreUnavailable indicates the article listing cannot be read.
	// This aborts the whole search request.
	ErrStoreUnavailable = errors.New("article store unavailable")

	// ErrArticleNotFound indicates one article's text is missing.
	// Callers skip the article and continue.
	ErrArticleNotFound = errors.New("article not found")

	// ErrDuplicateArticle indicates the catalog lists the same article
	// number twice. This is a data-integrity fault, not deduplicated.
	ErrDuplicateArticle = errors.New("duplicate article number")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("article store is closed")
)
