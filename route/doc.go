// Package route maps free-form questions to the conversation most likely to
// answer them, using keyword lists from a JSON configuration file. Routing
// is optional and advisory: the answer pipeline uses it to narrow retrieval
// when a route matches and falls back to the full corpus when none does.
package route
