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

package rank

import "github.com/dealrecall/dealrecall/core"

// RankMonitor observes the scoring and selection of a single query. All
// methods are called from the goroutine running the query; implementations
// that fan data out elsewhere must do their own synchronization.
type RankMonitor interface {
	// Start is called once before any candidate is scored.
	Start(query string)

	// TierContribution is called for every tier that contributed a nonzero
	// amount to a candidate's score.
	TierContribution(recordId core.ID, tier string, contribution float64)

	// CandidateScored is called after a candidate's rank score is final.
	CandidateScored(candidate *core.Candidate)

	// Finish is called once with the selected result.
	Finish(result *core.QueryResult)
}

type noopMonitor struct{}

func (*noopMonitor) Start(string)                              {}
func (*noopMonitor) TierContribution(core.ID, string, float64) {}
func (*noopMonitor) CandidateScored(*core.Candidate)           {}
func (*noopMonitor) Finish(*core.QueryResult)                  {}
