package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and splits on whitespace",
			input: "What Happens In The 4th Year",
			want:  []string{"what", "happens", "in", "the", "4th", "year"},
		},
		{
			name:  "strips surrounding punctuation",
			input: "renewal? (CPI) \"clause\", done.",
			want:  []string{"renewal", "cpi", "clause", "done"},
		},
		{
			name:  "keeps interior hyphens",
			input: "a 3-year commitment",
			want:  []string{"a", "3-year", "commitment"},
		},
		{
			name:  "drops tokens that are pure punctuation",
			input: "price - stability",
			want:  []string{"price", "stability"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}

	assert.Empty(t, tokenize("   "))
}

func TestTokenizeAndFilter(t *testing.T) {
	got := tokenizeAndFilter("What about the inflation clause in their renewal", 5)

	// Stop words and short tokens are gone, content terms survive.
	assert.Equal(t, []string{"inflation", "clause", "renewal"}, got)
}

func TestNgrams(t *testing.T) {
	tokens := []string{"linking", "renewal", "to", "cpi"}

	assert.Equal(t,
		[]string{"linking renewal", "renewal to", "to cpi"},
		ngrams(tokens, 2))
	assert.Equal(t,
		[]string{"linking renewal to", "renewal to cpi"},
		ngrams(tokens, 3))
	assert.Nil(t, ngrams(tokens, 5))
}
