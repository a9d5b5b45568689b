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


// Package ai defines the model-facing interfaces of the retrieval pipeline:
// coarse article selection over catalog headers and fine quote extraction
// over full article text.
//
// Subpackage openai implements both against any OpenAI-compatible chat API;
// subpackage mock provides deterministic test doubles.
package ai
