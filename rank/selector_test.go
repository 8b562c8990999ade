package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealrecall/dealrecall/core"
)

func scoredCandidate(id core.ID, rankScore float64, similarity float32) *core.Candidate {
	c := testCandidate(id, "context", "raw", similarity)
	c.RankScore = rankScore
	return c
}

func TestSelectEmptyShortlist(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select(nil)

	assert.False(t, result.Matched)
	assert.Zero(t, result.RecordId)
	assert.Empty(t, result.AnswerText)
}

func TestSelectHighestRankScoreWins(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(1, 12, 0.95),
		scoredCandidate(2, 80, 0.70),
		scoredCandidate(3, 40, 0.88),
	})

	require.True(t, result.Matched)
	assert.Equal(t, core.ID(2), result.RecordId)
}

func TestSelectTieBrokenBySimilarity(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(1, 40, 0.80),
		scoredCandidate(2, 40, 0.90),
	})

	assert.Equal(t, core.ID(2), result.RecordId)
}

func TestSelectTieBrokenByLowestId(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(9, 40, 0.85),
		scoredCandidate(4, 40, 0.85),
		scoredCandidate(7, 40, 0.85),
	})

	assert.Equal(t, core.ID(4), result.RecordId)
}

func TestSelectZeroRankBelowFloorIsNoMatch(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(1, 0, 0.70),
		scoredCandidate(2, 0, 0.65),
	})

	assert.False(t, result.Matched)
}

func TestSelectZeroRankAboveFloorStillMatches(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(1, 0, 0.78),
	})

	require.True(t, result.Matched)
	assert.Equal(t, core.ID(1), result.RecordId)
}

func TestSelectResultCarriesOutcomeAndLabel(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	c := scoredCandidate(6, 100, 0.82)
	c.Record.Outcome = "Agreed to link the 4th year renewal to CPI."

	result := selector.Select([]*core.Candidate{c})

	require.True(t, result.Matched)
	assert.Equal(t, "Agreed to link the 4th year renewal to CPI.", result.AnswerText)
	assert.Equal(t, "Conversation 6", result.SourceLabel)
}

func TestSelectDoesNotReorderInput(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	candidates := []*core.Candidate{
		scoredCandidate(1, 10, 0.80),
		scoredCandidate(2, 90, 0.70),
	}
	selector.Select(candidates)

	assert.Equal(t, core.ID(1), candidates[0].Record.Id)
	assert.Equal(t, core.ID(2), candidates[1].Record.Id)
}

func TestWithConfidentSimilarity(t *testing.T) {
	selector, err := NewSelector(WithConfidentSimilarity(0.5))
	require.NoError(t, err)

	result := selector.Select([]*core.Candidate{
		scoredCandidate(1, 0, 0.55),
	})
	assert.True(t, result.Matched)

	_, err = NewSelector(WithConfidentSimilarity(1.5))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}
