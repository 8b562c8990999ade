// Package ingestion turns a corpus document into stored conversation
// records. The splitter parses "Conversation N" blocks into records, the
// pipeline validates and stores them as a whole-corpus replacement, and a
// worker pool attaches embeddings asynchronously. A fingerprint checkpoint
// of the raw document lets repeated ingests of an unchanged corpus be
// skipped entirely.
package ingestion
