package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Record IDs are issued by a database sequence in ingestion order (1..N);
// corpus fingerprints use content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record is a single sales conversation from the corpus.
// Records are immutable after ingestion apart from the Vector field,
// which is populated asynchronously by the embedding processor.
type Record struct {
	Id           ID
	Conversation int    // Number from the "Conversation N" source header
	DealContext  string // Scenario description, the primary field for lexical matching
	Outcome      string // Guidance text returned to the caller when this record wins
	RawText      string // Full original block, used as fallback search text
	Vector       []float32
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// Label returns the human-readable source reference for the record,
// e.g. "Conversation 6".
func (r *Record) Label() string {
	return fmt.Sprintf("Conversation %d", r.Conversation)
}

// Candidate pairs a shortlisted record with its vector similarity score and
// the rank score computed by the tiered scorer. Candidates live only for the
// duration of a single query and are never persisted.
type Candidate struct {
	Record     *Record
	Similarity float32 // From the embedding index; shortlist and tie-break only
	RankScore  float64 // Deterministic composite score from the tiered scorer
}

// QueryResult is the single answer returned for a question.
// Matched is false for the explicit no-match sentinel, in which case the
// remaining fields are zero.
type QueryResult struct {
	RecordId    ID
	AnswerText  string
	SourceLabel string
	Matched     bool
}

// NoMatch returns the sentinel result for queries with no confident answer.
func NoMatch() *QueryResult {
	return &QueryResult{}
}

// Checkpoint records the state of a completed ingest for a named corpus.
// The fingerprint is a content hash of the raw corpus text, used to skip
// re-ingesting an unchanged corpus.
type Checkpoint struct {
	Name        string
	Fingerprint ID
	UpdatedAt   time.Time
}
