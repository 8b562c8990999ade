package rank

import (
	"log/slog"
	"strings"

	"github.com/dealrecall/dealrecall/core"
)

// Scorer computes a deterministic composite rank score per candidate against
// a query. Scoring proceeds through four tiers in fixed order; a tier only
// contributes when its activation predicate over the earlier tiers' outcome
// holds. Identical query + identical candidate set always produces identical
// scores: term lists are ordered slices and summation order is fixed.
//
// The semantic similarity score from the embedding index is never added to
// the rank score; it only decides the shortlist and breaks ties.
type Scorer struct {
	dict   *Dictionary
	rules  []scoringRule
	logger *slog.Logger
}

// scoringRule is one tier of the pipeline: a name, an activation predicate
// over the outcome of higher-priority tiers, and a scoring function. Tiers
// are configuration, not scattered conditionals; adding a tier means adding
// a rule here.
type scoringRule struct {
	name   string
	active func(outcome TierOutcome) bool
	score  func(q *queryText, c *candidateText, outcome *TierOutcome) float64
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer over the given keyword dictionary.
// The dictionary is validated once here so scoring itself cannot fail.
func NewScorer(dict *Dictionary, opts ...ScorerOption) (*Scorer, error) {
	if dict == nil {
		return nil, ErrDictionaryRequired
	}
	if err := dict.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		dict:   dict,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	always := func(TierOutcome) bool { return true }
	s.rules = []scoringRule{
		{
			name:   TierPrimary,
			active: always,
			score:  s.scorePrimary,
		},
		{
			name: TierSecondary,
			// Secondary terms only matter when the primary signal is weak
			// or absent; they must not inflate a strong primary match.
			active: func(o TierOutcome) bool {
				return !o.PrimaryMatched || o.PrimaryHits < dict.WeakSignalHits
			},
			score: s.scoreSecondary,
		},
		{
			name: TierPhrase,
			// Phrase matching is a fallback net for queries that restate a
			// scenario without hitting the primary vocabulary.
			active: func(o TierOutcome) bool { return !o.PrimaryMatched },
			score:  s.scorePhrases,
		},
		{
			name:   TierOverlap,
			active: always,
			score:  s.scoreOverlap,
		},
	}

	return s, nil
}

// Score annotates each candidate with its rank score for the query.
func (s *Scorer) Score(query string, candidates []*core.Candidate) {
	s.ScoreWithMonitor(query, candidates, nil)
}

// ScoreWithMonitor annotates each candidate with its rank score, reporting
// per-tier contributions to the monitor.
func (s *Scorer) ScoreWithMonitor(query string, candidates []*core.Candidate, monitor RankMonitor) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	q := s.prepare(query)

	for _, candidate := range candidates {
		c := prepareCandidate(candidate.Record)

		var outcome TierOutcome
		var total float64
		for _, rule := range s.rules {
			if !rule.active(outcome) {
				continue
			}
			contribution := rule.score(q, c, &outcome)
			if contribution != 0 {
				monitor.TierContribution(candidate.Record.Id, rule.name, contribution)
			}
			total += contribution
		}

		candidate.RankScore = total
		monitor.CandidateScored(candidate)

		s.logger.Debug("candidate scored",
			"recordId", candidate.Record.Id,
			"rankScore", candidate.RankScore,
			"similarity", candidate.Similarity,
			"primaryHits", outcome.PrimaryHits)
	}
}

// queryText is the preprocessed form of a query, computed once per Score
// call and shared across candidates.
type queryText struct {
	lower   string
	terms   []string // stop-word filtered, minimum length applied
	phrases []string // 3- then 2-token n-grams over the raw token stream
}

func (s *Scorer) prepare(query string) *queryText {
	tokens := tokenize(query)
	phrases := ngrams(tokens, 3)
	phrases = append(phrases, ngrams(tokens, 2)...)

	return &queryText{
		lower:   strings.ToLower(query),
		terms:   tokenizeAndFilter(query, s.dict.MinTermLength),
		phrases: phrases,
	}
}

// candidateText is the lowercased view of one record, computed once per
// candidate and shared across tiers.
type candidateText struct {
	context string
	raw     string
}

func prepareCandidate(record *core.Record) *candidateText {
	return &candidateText{
		context: strings.ToLower(record.DealContext),
		raw:     strings.ToLower(record.RawText),
	}
}

// scorePrimary adds the weight of every primary keyword present in both the
// query and the deal context, then the combo bonuses. It records the primary
// outcome consulted by the later tiers' activation predicates.
func (s *Scorer) scorePrimary(q *queryText, c *candidateText, outcome *TierOutcome) float64 {
	var score float64

	for _, term := range s.dict.Primary {
		if strings.Contains(q.lower, term.Term) && strings.Contains(c.context, term.Term) {
			score += term.Weight
			outcome.PrimaryHits++
			outcome.PrimaryMatched = true
		}
	}

	for _, combo := range s.dict.Combos {
		if comboMatches(combo, q.lower, c.context) {
			score += combo.Bonus
			outcome.PrimaryMatched = true
		}
	}

	return score
}

func comboMatches(combo ComboBonus, query, context string) bool {
	for _, term := range combo.Terms {
		if !strings.Contains(query, term) || !strings.Contains(context, term) {
			return false
		}
	}
	return true
}

// scoreSecondary adds the term-specific weight of every secondary keyword
// present in both the query and the deal context.
func (s *Scorer) scoreSecondary(q *queryText, c *candidateText, _ *TierOutcome) float64 {
	var score float64
	for _, term := range s.dict.Secondary {
		if strings.Contains(q.lower, term.Term) && strings.Contains(c.context, term.Term) {
			score += term.Weight
		}
	}
	return score
}

// scorePhrases adds the phrase weight for every contiguous 2-3 token query
// n-gram found verbatim in the deal context.
func (s *Scorer) scorePhrases(q *queryText, c *candidateText, _ *TierOutcome) float64 {
	var score float64
	for _, phrase := range q.phrases {
		if strings.Contains(c.context, phrase) {
			score += s.dict.PhraseWeight
		}
	}
	return score
}

// scoreOverlap adds the fallback per-term contribution: deal-context hits
// weigh more than raw-text hits. The total is clamped at the dictionary's
// overlap cap so that no amount of incidental term overlap on a long query
// can outvote a single primary keyword hit.
func (s *Scorer) scoreOverlap(q *queryText, c *candidateText, _ *TierOutcome) float64 {
	var score float64
	for _, term := range q.terms {
		switch {
		case strings.Contains(c.context, term):
			score += s.dict.ContextTermWeight
		case strings.Contains(c.raw, term):
			score += s.dict.RawTermWeight
		}
	}
	if score > s.dict.OverlapCap {
		score = s.dict.OverlapCap
	}
	return score
}
