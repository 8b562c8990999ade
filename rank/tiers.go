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

import "fmt"

// Tier names, in evaluation order.
const (
	TierPrimary   = "primary"
	TierSecondary = "secondary"
	TierPhrase    = "phrase"
	TierOverlap   = "overlap"
)

// Default scoring weights and thresholds. The weak-signal threshold and the
// confident-similarity floor are tuned against the corpus scenarios, not
// derived from first principles; treat them as dials.
const (
	// DefaultPrimaryWeight is the per-term contribution of a primary
	// keyword hit.
	DefaultPrimaryWeight = 20.0

	// DefaultPhraseWeight is the per-phrase contribution of a 2-3 token
	// query n-gram found verbatim in the deal context.
	DefaultPhraseWeight = 10.0

	// DefaultContextTermWeight is the fallback contribution of a single
	// query term found in the deal context.
	DefaultContextTermWeight = 2.0

	// DefaultRawTermWeight is the fallback contribution of a single query
	// term found only in the raw record text.
	DefaultRawTermWeight = 1.0

	// DefaultOverlapCap bounds the overlap tier's total contribution per
	// candidate. Keeping it under DefaultPrimaryWeight guarantees a record
	// with even one primary hit outranks any amount of incidental term
	// overlap.
	DefaultOverlapCap = DefaultPrimaryWeight - 1

	// DefaultWeakSignalHits is the number of primary keyword hits below
	// which the primary signal is considered weak and secondary keywords
	// still contribute.
	DefaultWeakSignalHits = 2

	// DefaultMinTermLength is the minimum length of a query term considered
	// by the fallback overlap tier. Short terms are too noisy to matter.
	DefaultMinTermLength = 5
)

// WeightedTerm is a keyword or phrase with its scoring weight.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// ComboBonus awards an extra bonus when every member term occurs in both the
// query and the candidate's deal context. Rare keyword combinations are very
// specific and almost certainly identify the right conversation.
type ComboBonus struct {
	Terms []string
	Bonus float64
}

// TierOutcome carries what the higher-priority tiers produced for one
// candidate. Lower-priority tiers consult it in their activation predicates.
type TierOutcome struct {
	// PrimaryMatched is true if any primary keyword or combo matched.
	PrimaryMatched bool

	// PrimaryHits counts the primary keywords that matched.
	PrimaryHits int
}

// Dictionary is the static tiered keyword configuration consulted by the
// Scorer. It is loaded once at startup and immutable thereafter; concurrent
// queries share it without locking.
type Dictionary struct {
	// Primary keywords are decisive deal-context markers. Each hit
	// contributes its weight (typically DefaultPrimaryWeight).
	Primary []WeightedTerm

	// Secondary keywords are broader domain terms with term-specific
	// weights. They only contribute when the primary signal is weak or
	// absent.
	Secondary []WeightedTerm

	// Combos are rare keyword combinations with their bonuses.
	Combos []ComboBonus

	// PhraseWeight is the contribution of each query n-gram found in the
	// deal context. Phrase matching only runs when no primary keyword
	// matched.
	PhraseWeight float64

	// ContextTermWeight and RawTermWeight drive the always-on fallback
	// overlap tier. OverlapCap bounds the tier's total contribution per
	// candidate and must stay below the smallest primary weight.
	ContextTermWeight float64
	RawTermWeight     float64
	OverlapCap        float64

	// WeakSignalHits is the primary-hit count below which secondary
	// keywords still contribute.
	WeakSignalHits int

	// MinTermLength is the minimum query term length for the overlap tier.
	MinTermLength int
}

// DefaultDictionary returns the tiered keyword configuration for the sales
// conversation corpus.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Primary: []WeightedTerm{
			{Term: "3-year commitment", Weight: DefaultPrimaryWeight},
			{Term: "4th year", Weight: DefaultPrimaryWeight},
			{Term: "cpi", Weight: DefaultPrimaryWeight},
			{Term: "linking renewal", Weight: DefaultPrimaryWeight},
			{Term: "fixed percentage", Weight: DefaultPrimaryWeight},
			{Term: "eu inflation", Weight: DefaultPrimaryWeight},
			{Term: "inflation cap", Weight: DefaultPrimaryWeight},
			{Term: "andorra telecom", Weight: DefaultPrimaryWeight},
			{Term: "requested clause", Weight: DefaultPrimaryWeight},
		},
		Secondary: []WeightedTerm{
			{Term: "employee count", Weight: 5},
			{Term: "price stability", Weight: 5},
			{Term: "renewal", Weight: 4},
			{Term: "clause", Weight: 4},
			{Term: "discount", Weight: 3},
			{Term: "commitment", Weight: 3},
			{Term: "pricing", Weight: 3},
			{Term: "contract", Weight: 3},
		},
		Combos: []ComboBonus{
			{Terms: []string{"4th year", "linking renewal", "cpi"}, Bonus: 50},
			{Terms: []string{"4th year", "cpi"}, Bonus: 40},
			{Terms: []string{"linking renewal", "cpi"}, Bonus: 35},
		},
		PhraseWeight:      DefaultPhraseWeight,
		ContextTermWeight: DefaultContextTermWeight,
		RawTermWeight:     DefaultRawTermWeight,
		OverlapCap:        DefaultOverlapCap,
		WeakSignalHits:    DefaultWeakSignalHits,
		MinTermLength:     DefaultMinTermLength,
	}
}

// Validate checks that the dictionary is usable for scoring.
func (d *Dictionary) Validate() error {
	if d == nil {
		return ErrDictionaryRequired
	}

	for _, term := range d.Primary {
		if err := validateTerm(TierPrimary, term); err != nil {
			return err
		}
	}
	for _, term := range d.Secondary {
		if err := validateTerm(TierSecondary, term); err != nil {
			return err
		}
	}
	for _, combo := range d.Combos {
		if len(combo.Terms) == 0 {
			return fmt.Errorf("%w: combo with no terms", ErrEmptyTerm)
		}
		for _, term := range combo.Terms {
			if term == "" {
				return fmt.Errorf("%w: combo member", ErrEmptyTerm)
			}
		}
		if combo.Bonus <= 0 {
			return fmt.Errorf("%w: combo %v", ErrInvalidWeight, combo.Terms)
		}
	}

	if d.PhraseWeight <= 0 || d.ContextTermWeight <= 0 || d.RawTermWeight <= 0 {
		return fmt.Errorf("%w: tier weights must be positive", ErrInvalidWeight)
	}
	if d.OverlapCap <= 0 {
		return fmt.Errorf("%w: overlap cap must be positive", ErrInvalidWeight)
	}
	for _, term := range d.Primary {
		if d.OverlapCap >= term.Weight {
			return fmt.Errorf("%w: overlap cap %v must stay below primary term %q weight %v",
				ErrInvalidWeight, d.OverlapCap, term.Term, term.Weight)
		}
	}
	if d.WeakSignalHits < 1 {
		return fmt.Errorf("%w: weak signal threshold must be at least 1", ErrInvalidWeight)
	}
	if d.MinTermLength < 1 {
		return fmt.Errorf("%w: minimum term length must be at least 1", ErrInvalidWeight)
	}

	return nil
}

func validateTerm(tier string, term WeightedTerm) error {
	if term.Term == "" {
		return fmt.Errorf("%w: %s tier", ErrEmptyTerm, tier)
	}
	if term.Weight <= 0 {
		return fmt.Errorf("%w: %s term %q", ErrInvalidWeight, tier, term.Term)
	}
	return nil
}
