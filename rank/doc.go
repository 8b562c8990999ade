// Copyright 2026 Dealrecall Authors
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

// Package rank re-orders the semantic shortlist with deterministic lexical
// scoring and selects the single best record.
//
// Scoring runs four tiers against each candidate: primary keywords and combo
// bonuses, conditionally activated secondary keywords, conditionally
// activated phrase n-grams, and an always-on term-overlap fallback. The
// overlap tier's total is capped below the primary keyword weight, so a
// record with any primary hit always outranks one carried by term overlap
// alone, no matter how long the query is. The Selector then
// applies a total order over (rank score, similarity, record id), so every
// query has exactly one reproducible answer or an explicit no-match.
package rank
