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


// Package corpus defines the storage abstraction for the reference article
// corpus: a catalog of (number, title) pairs plus the full text of each
// article, loaded on demand.
//
// Two backends are provided:
//   - corpus/fsdir reads a directory of markdown files (the scraped corpus
//     layout: headers.md plus one {N}.md per article)
//   - corpus/badger serves the same corpus out of a BadgerDB key-value
//     store, populated from an fsdir corpus by corpus/seed
package corpus
