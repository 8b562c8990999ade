package rank

import (
	"log/slog"
	"sort"

	"github.com/dealrecall/dealrecall/core"
)

// DefaultConfidentSimilarity is the similarity floor under which a candidate
// with no lexical signal is considered an accidental semantic neighbor
// rather than an answer.
const DefaultConfidentSimilarity float32 = 0.75

// Selector picks exactly one winner from a scored candidate list, or reports
// that no record answers the query. Selection is a total order: rank score
// descending, then similarity descending, then record id ascending, so the
// same inputs always yield the same winner.
type Selector struct {
	confidentSimilarity float32
	logger              *slog.Logger
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector) error

// WithConfidentSimilarity overrides the similarity floor applied to
// candidates whose rank score is zero.
// Default is DefaultConfidentSimilarity.
func WithConfidentSimilarity(threshold float32) SelectorOption {
	return func(s *Selector) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		s.confidentSimilarity = threshold
		return nil
	}
}

// WithSelectorLogger sets a custom logger.
// Default is slog.Default().
func WithSelectorLogger(logger *slog.Logger) SelectorOption {
	return func(s *Selector) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSelector creates a selector.
func NewSelector(opts ...SelectorOption) (*Selector, error) {
	s := &Selector{
		confidentSimilarity: DefaultConfidentSimilarity,
		logger:              slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Select returns the single best candidate as a query result, or the
// no-match result when the list is empty or the best candidate carries no
// lexical signal and sits below the confident-similarity floor.
func (s *Selector) Select(candidates []*core.Candidate) *core.QueryResult {
	return s.SelectWithMonitor(candidates, nil)
}

// SelectWithMonitor is Select with the final result reported to the monitor.
func (s *Selector) SelectWithMonitor(candidates []*core.Candidate, monitor RankMonitor) *core.QueryResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if len(candidates) == 0 {
		result := core.NoMatch()
		monitor.Finish(result)
		return result
	}

	ordered := make([]*core.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RankScore != ordered[j].RankScore {
			return ordered[i].RankScore > ordered[j].RankScore
		}
		if ordered[i].Similarity != ordered[j].Similarity {
			return ordered[i].Similarity > ordered[j].Similarity
		}
		return ordered[i].Record.Id < ordered[j].Record.Id
	})

	best := ordered[0]
	if best.RankScore == 0 && best.Similarity < s.confidentSimilarity {
		s.logger.Debug("best candidate below confidence floor",
			"recordId", best.Record.Id,
			"similarity", best.Similarity)
		result := core.NoMatch()
		monitor.Finish(result)
		return result
	}

	result := &core.QueryResult{
		RecordId:    best.Record.Id,
		AnswerText:  best.Record.Outcome,
		SourceLabel: best.Record.Label(),
		Matched:     true,
	}

	s.logger.Debug("candidate selected",
		"recordId", best.Record.Id,
		"rankScore", best.RankScore,
		"similarity", best.Similarity)

	monitor.Finish(result)
	return result
}
