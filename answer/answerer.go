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

package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dealrecall/dealrecall/ai"
	"github.com/dealrecall/dealrecall/core"
	"github.com/dealrecall/dealrecall/rank"
	"github.com/dealrecall/dealrecall/route"
	"github.com/dealrecall/dealrecall/storage"
)

const (
	// DefaultMinSimilarity is the vector similarity floor for the semantic
	// shortlist. Below it a record is not considered related to the query
	// at all.
	DefaultMinSimilarity float32 = 0.60

	// DefaultTopK is the shortlist size handed to the lexical re-ranker.
	DefaultTopK = 5
)

// Answerer runs the full query pipeline: embed the question, shortlist by
// vector similarity, re-rank lexically, select one answer. The pipeline is
// deterministic end to end for a fixed corpus, so repeating a question
// returns the identical result.
type Answerer struct {
	records  storage.RecordRepository
	embedder ai.Embedder
	scorer   *rank.Scorer
	selector *rank.Selector
	router   *route.Router

	minSimilarity float32
	topK          int
	logger        *slog.Logger
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer) error

// WithMinSimilarity overrides the shortlist similarity floor.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(threshold float32) AnswererOption {
	return func(a *Answerer) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidSimilarity, threshold)
		}
		a.minSimilarity = threshold
		return nil
	}
}

// WithTopK overrides the shortlist size.
// Default is DefaultTopK.
func WithTopK(topK int) AnswererOption {
	return func(a *Answerer) error {
		if topK < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidTopK, topK)
		}
		a.topK = topK
		return nil
	}
}

// WithScorer replaces the default re-ranker built from rank.DefaultDictionary.
func WithScorer(scorer *rank.Scorer) AnswererOption {
	return func(a *Answerer) error {
		if scorer == nil {
			return rank.ErrDictionaryRequired
		}
		a.scorer = scorer
		return nil
	}
}

// WithSelector replaces the default selector.
func WithSelector(selector *rank.Selector) AnswererOption {
	return func(a *Answerer) error {
		a.selector = selector
		return nil
	}
}

// WithRouter enables conversation routing. When the router matches a
// conversation, the shortlist is narrowed to it before re-ranking.
func WithRouter(router *route.Router) AnswererOption {
	return func(a *Answerer) error {
		a.router = router
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AnswererOption {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates an answerer over the record repository and embedder.
func NewAnswerer(records storage.RecordRepository, embedder ai.Embedder, opts ...AnswererOption) (*Answerer, error) {
	if records == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	a := &Answerer{
		records:       records,
		embedder:      embedder,
		minSimilarity: DefaultMinSimilarity,
		topK:          DefaultTopK,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.scorer == nil {
		scorer, err := rank.NewScorer(rank.DefaultDictionary(), rank.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.scorer = scorer
	}
	if a.selector == nil {
		selector, err := rank.NewSelector(rank.WithSelectorLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.selector = selector
	}

	return a, nil
}

// Ask answers a single question against the corpus.
func (a *Answerer) Ask(ctx context.Context, question string) (*core.QueryResult, error) {
	return a.AskWithMonitor(ctx, question, nil)
}

// AskWithMonitor is Ask with scoring and selection reported to the monitor.
func (a *Answerer) AskWithMonitor(ctx context.Context, question string, monitor rank.RankMonitor) (*core.QueryResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	vector, err := a.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	candidates, err := a.records.FindSimilar(ctx, vector, a.minSimilarity, a.topK)
	if err != nil {
		return nil, fmt.Errorf("shortlist records: %w", err)
	}

	candidates = a.narrowByRoute(question, candidates)

	a.scorer.ScoreWithMonitor(question, candidates, monitor)
	result := a.selector.SelectWithMonitor(candidates, monitor)

	a.logger.Debug("question answered",
		"shortlisted", len(candidates),
		"matched", result.Matched,
		"recordId", result.RecordId)

	return result, nil
}

// narrowByRoute keeps only the routed conversation's candidates. Routing
// must never turn a findable answer into a miss, so when the routed
// conversation is absent from the shortlist the full shortlist stands.
func (a *Answerer) narrowByRoute(question string, candidates []*core.Candidate) []*core.Candidate {
	if a.router == nil {
		return candidates
	}

	conversation, matched := a.router.Route(question)
	if !matched {
		return candidates
	}

	narrowed := make([]*core.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Record.Conversation == conversation {
			narrowed = append(narrowed, candidate)
		}
	}
	if len(narrowed) == 0 {
		a.logger.Debug("routed conversation not in shortlist, keeping full shortlist",
			"conversation", conversation)
		return candidates
	}

	a.logger.Debug("shortlist narrowed by route",
		"conversation", conversation,
		"kept", len(narrowed),
		"dropped", len(candidates)-len(narrowed))
	return narrowed
}
