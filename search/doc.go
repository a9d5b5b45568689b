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


// Package search orchestrates the two-stage retrieval pipeline.
//
// Stage one asks the model to pick candidate articles from the catalog of
// headers; it is cheap because it sees titles only. Stage two loads each
// candidate's full text and asks the model for supporting quotes; it is
// expensive, which is exactly why stage one exists to bound how often it
// runs. Stage-two calls run concurrently up to a configurable in-flight
// limit, and results are always assembled in catalog order.
//
// Only a catalog failure is fatal to a search. Everything else — a failed
// selection, a missing article, a bad extraction — degrades to fewer
// results, with the SearchMonitor keeping the distinction visible to
// operators.
package search
