package storage

import (
	"context"

	"github.com/dealrecall/dealrecall/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds records similar to the given query vector.
	// Returns candidates with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.Candidate, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordRepository provides operations for managing conversation records.
// Records are written once at ingestion time and treated as read-only while
// queries are served; re-ingest replaces the whole corpus.
type RecordRepository interface {
	Repository

	// AddRecords adds one or more records to storage.
	// IDs are generated from the sequence in call order, so the first record
	// of a fresh corpus gets ID 1. Sets InsertedAt/UpdatedAt timestamps.
	// Returns the records with generated IDs and timestamps populated.
	AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// UpdateRecords updates existing records (used by the embedding
	// processors to attach vectors). Updates UpdatedAt automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// DeleteRecords removes records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRecords(ctx context.Context, ids ...core.ID) error

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.Record, error)

	// GetRecords retrieves multiple records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetRecords(ctx context.Context, ids ...core.ID) ([]*core.Record, error)

	// GetAllRecords retrieves every record ordered by ascending ID,
	// which is ingestion order.
	GetAllRecords(ctx context.Context) ([]*core.Record, error)

	// GetRecordByConversation retrieves the record for a conversation number.
	// Returns ErrNotFound if no record carries that number.
	GetRecordByConversation(ctx context.Context, conversation int) (*core.Record, error)

	// CountRecords returns the number of records in the corpus.
	CountRecords(ctx context.Context) (int, error)
}

// CheckpointRepository provides operations for managing ingest checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint under its name.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a name.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)
}
