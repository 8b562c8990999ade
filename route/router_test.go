package route

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []ConversationRoute {
	return []ConversationRoute{
		{Conversation: 6, Name: "CPI renewal linkage", Keywords: []string{"cpi", "4th year", "renewal"}},
		{Conversation: 15, Name: "Discount negotiation", Keywords: []string{"discount", "pricing"}},
		{Conversation: 18, Name: "Inflation cap", Keywords: []string{"inflation cap", "eu inflation"}},
	}
}

func TestRouteByKeywordHits(t *testing.T) {
	router, err := NewRouter(testRoutes())
	require.NoError(t, err)

	conversation, matched := router.Route("What about the 4th year CPI renewal?")

	require.True(t, matched)
	assert.Equal(t, 6, conversation)
}

func TestRouteNoMatchSearchesAll(t *testing.T) {
	router, err := NewRouter(testRoutes())
	require.NoError(t, err)

	conversation, matched := router.Route("totally unrelated question")

	assert.False(t, matched)
	assert.Zero(t, conversation)
}

func TestRouteTieGoesToLowestConversation(t *testing.T) {
	router, err := NewRouter([]ConversationRoute{
		{Conversation: 9, Name: "b", Keywords: []string{"renewal"}},
		{Conversation: 3, Name: "a", Keywords: []string{"renewal"}},
	})
	require.NoError(t, err)

	conversation, matched := router.Route("renewal question")

	require.True(t, matched)
	assert.Equal(t, 3, conversation)
}

func TestRouteCaseInsensitive(t *testing.T) {
	router, err := NewRouter(testRoutes())
	require.NoError(t, err)

	conversation, matched := router.Route("EU INFLATION CAP details")

	require.True(t, matched)
	assert.Equal(t, 18, conversation)
}

func TestNewRouterRejectsInvalidRoutes(t *testing.T) {
	_, err := NewRouter([]ConversationRoute{{Conversation: 0, Keywords: []string{"x"}}})
	assert.ErrorIs(t, err, ErrInvalidRoute)

	_, err = NewRouter([]ConversationRoute{{Conversation: 1}})
	assert.ErrorIs(t, err, ErrInvalidRoute)

	_, err = NewRouter([]ConversationRoute{{Conversation: 1, Keywords: []string{""}}})
	assert.ErrorIs(t, err, ErrInvalidRoute)
}

func TestLookup(t *testing.T) {
	router, err := NewRouter(testRoutes())
	require.NoError(t, err)

	route, ok := router.Lookup(15)
	require.True(t, ok)
	assert.Equal(t, "Discount negotiation", route.Name)

	_, ok = router.Lookup(99)
	assert.False(t, ok)
}

func TestRouterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	content := `{
		"conversations": [
			{"conversation": 6, "name": "CPI renewal linkage", "keywords": ["cpi", "4th year"]}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	router, err := RouterFromFile(path)
	require.NoError(t, err)

	conversation, matched := router.Route("cpi question")
	require.True(t, matched)
	assert.Equal(t, 6, conversation)
}

func TestRouterFromFileErrors(t *testing.T) {
	_, err := RouterFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = RouterFromFile(path)
	assert.ErrorIs(t, err, ErrMalformedConfig)
}
