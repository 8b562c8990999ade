// Package mock provides deterministic test doubles for the ai interfaces.
// The default mock embedder hashes its input, so identical text always
// produces an identical vector and similarity search is reproducible in tests.
package mock
