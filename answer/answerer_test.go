package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealrecall/dealrecall/ai/mock"
	"github.com/dealrecall/dealrecall/core"
	"github.com/dealrecall/dealrecall/route"
	"github.com/dealrecall/dealrecall/storage"
	"github.com/dealrecall/dealrecall/storage/badger"
)

// fixedEmbedder returns the same query vector for every question, so tests
// control shortlist similarities through the stored record vectors alone.
func fixedEmbedder(vector []float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return vector, nil
	}
	return embedder
}

func newTestRepo(t *testing.T, records ...*core.Record) storage.RecordRepository {
	t.Helper()

	repo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	if len(records) > 0 {
		_, err = repo.AddRecords(context.Background(), records...)
		require.NoError(t, err)
	}
	return repo
}

// vec builds a record vector whose dot product with the unit query vector
// [1 0 0 0] equals the given similarity.
func vec(similarity float32) []float32 {
	return []float32{similarity, 0, 0, 0}
}

var queryVector = []float32{1, 0, 0, 0}

func TestAskReturnsLexicalWinner(t *testing.T) {
	repo := newTestRepo(t,
		&core.Record{
			Conversation: 6,
			DealContext:  "Customer asked about linking renewal in the 4th year to CPI.",
			Outcome:      "Agreed to link the 4th year renewal to CPI.",
			RawText:      "Conversation 6 transcript",
			Vector:       vec(0.70),
		},
		&core.Record{
			Conversation: 15,
			DealContext:  "General renewal pricing discussion.",
			Outcome:      "Offered the standard renewal terms.",
			RawText:      "Conversation 15 transcript",
			Vector:       vec(0.90),
		},
	)

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)

	result, err := answerer.Ask(context.Background(), "What about the 4th year and CPI?")
	require.NoError(t, err)

	// The semantically closer record loses to the one the re-ranker backs.
	require.True(t, result.Matched)
	assert.Equal(t, "Agreed to link the 4th year renewal to CPI.", result.AnswerText)
	assert.Equal(t, "Conversation 6", result.SourceLabel)
}

func TestAskEmptyQuestion(t *testing.T) {
	answerer, err := NewAnswerer(newTestRepo(t), fixedEmbedder(queryVector))
	require.NoError(t, err)

	_, err = answerer.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAskEmptyShortlistIsNoMatch(t *testing.T) {
	repo := newTestRepo(t, &core.Record{
		Conversation: 1,
		DealContext:  "context",
		Outcome:      "outcome",
		Vector:       vec(0.40),
	})

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)

	result, err := answerer.Ask(context.Background(), "anything")
	require.NoError(t, err)

	assert.False(t, result.Matched)
}

func TestAskZeroRankBelowConfidenceFloorIsNoMatch(t *testing.T) {
	repo := newTestRepo(t, &core.Record{
		Conversation: 3,
		DealContext:  "onboarding workshop scheduling",
		Outcome:      "outcome",
		Vector:       vec(0.65),
	})

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)

	result, err := answerer.Ask(context.Background(), "unrelated legal question")
	require.NoError(t, err)

	assert.False(t, result.Matched)
}

func TestAskZeroRankHighSimilarityMatches(t *testing.T) {
	repo := newTestRepo(t, &core.Record{
		Conversation: 3,
		DealContext:  "onboarding workshop scheduling",
		Outcome:      "Scheduled the workshop for the second week.",
		Vector:       vec(0.80),
	})

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)

	result, err := answerer.Ask(context.Background(), "unrelated legal question")
	require.NoError(t, err)

	require.True(t, result.Matched)
	assert.Equal(t, "Conversation 3", result.SourceLabel)
}

func TestAskDeterministic(t *testing.T) {
	repo := newTestRepo(t,
		&core.Record{
			Conversation: 6,
			DealContext:  "cpi renewal for the 4th year",
			Outcome:      "outcome six",
			Vector:       vec(0.82),
		},
		&core.Record{
			Conversation: 15,
			DealContext:  "renewal pricing discount contract",
			Outcome:      "outcome fifteen",
			Vector:       vec(0.85),
		},
	)

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)

	first, err := answerer.Ask(context.Background(), "4th year cpi renewal")
	require.NoError(t, err)

	for range 5 {
		result, err := answerer.Ask(context.Background(), "4th year cpi renewal")
		require.NoError(t, err)
		assert.Equal(t, first, result)
	}
}

func TestAskWithRouterNarrowsShortlist(t *testing.T) {
	repo := newTestRepo(t,
		&core.Record{
			Conversation: 6,
			DealContext:  "alpha scenario",
			Outcome:      "outcome six",
			Vector:       vec(0.80),
		},
		&core.Record{
			Conversation: 15,
			DealContext:  "beta scenario",
			Outcome:      "outcome fifteen",
			Vector:       vec(0.90),
		},
	)

	router, err := route.NewRouter([]route.ConversationRoute{
		{Conversation: 6, Name: "renewals", Keywords: []string{"renewal"}},
	})
	require.NoError(t, err)

	unrouted, err := NewAnswerer(repo, fixedEmbedder(queryVector))
	require.NoError(t, err)
	routed, err := NewAnswerer(repo, fixedEmbedder(queryVector), WithRouter(router))
	require.NoError(t, err)

	// Without routing the higher-similarity record wins the zero-rank tie.
	result, err := unrouted.Ask(context.Background(), "renewal timing")
	require.NoError(t, err)
	assert.Equal(t, "Conversation 15", result.SourceLabel)

	// Routing narrows the shortlist to conversation 6.
	result, err = routed.Ask(context.Background(), "renewal timing")
	require.NoError(t, err)
	assert.Equal(t, "Conversation 6", result.SourceLabel)
}

func TestAskRoutedConversationAbsentKeepsShortlist(t *testing.T) {
	repo := newTestRepo(t, &core.Record{
		Conversation: 15,
		DealContext:  "beta scenario",
		Outcome:      "outcome fifteen",
		Vector:       vec(0.90),
	})

	router, err := route.NewRouter([]route.ConversationRoute{
		{Conversation: 6, Name: "renewals", Keywords: []string{"renewal"}},
	})
	require.NoError(t, err)

	answerer, err := NewAnswerer(repo, fixedEmbedder(queryVector), WithRouter(router))
	require.NoError(t, err)

	result, err := answerer.Ask(context.Background(), "renewal timing")
	require.NoError(t, err)

	require.True(t, result.Matched)
	assert.Equal(t, "Conversation 15", result.SourceLabel)
}

func TestAskPropagatesEmbedderError(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	wantErr := errors.New("embedding host unreachable")
	embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
		return nil, wantErr
	}

	answerer, err := NewAnswerer(newTestRepo(t), embedder)
	require.NoError(t, err)

	_, err = answerer.Ask(context.Background(), "question")
	assert.ErrorIs(t, err, wantErr)
}

func TestNewAnswererValidation(t *testing.T) {
	_, err := NewAnswerer(nil, fixedEmbedder(queryVector))
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewAnswerer(newTestRepo(t), nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewAnswerer(newTestRepo(t), fixedEmbedder(queryVector), WithTopK(0))
	assert.ErrorIs(t, err, ErrInvalidTopK)

	_, err = NewAnswerer(newTestRepo(t), fixedEmbedder(queryVector), WithMinSimilarity(1.2))
	assert.ErrorIs(t, err, ErrInvalidSimilarity)
}
