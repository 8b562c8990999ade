package rank

import "strings"

// Stop words excluded from fallback term-overlap matching
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenize splits text into lowercased words with surrounding punctuation
// trimmed. Stop words are kept; callers that need them removed use
// tokenizeAndFilter.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	return tokens
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words and words shorter than minLength.
func tokenizeAndFilter(text string, minLength int) []string {
	words := tokenize(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		if len(word) >= minLength && !stopWords[word] {
			filtered = append(filtered, word)
		}
	}

	return filtered
}

// ngrams returns the contiguous n-token phrases of the given tokens, joined
// with single spaces, in order of occurrence.
func ngrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}

	phrases := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		phrases = append(phrases, strings.Join(tokens[i:i+n], " "))
	}
	return phrases
}
