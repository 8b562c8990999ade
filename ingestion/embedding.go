package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dealrecall/dealrecall/ai"
	"github.com/dealrecall/dealrecall/core"
	"github.com/dealrecall/dealrecall/storage"
)

// embeddingProcessor generates vectors for ingested conversation records.
type embeddingProcessor struct {
	recordRepository storage.RecordRepository
	embedder         ai.Embedder
	logger           *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(recordRepository storage.RecordRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		recordRepository: recordRepository,
		embedder:         embedder,
		logger:           logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified records. Each record is
// embedded from its raw text so the vector covers the whole conversation,
// not just the deal context line.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing records for embeddings", "records", len(ids))

	slices.Sort(ids)

	records, err := ep.recordRepository.GetRecords(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving records", "err", err)
		return err
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.RawText
	}

	ep.logger.Debug("generating embeddings for records", "records", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(records), len(embeddings))
	}

	// Similarity search dot-products stored vectors, so anything persisted
	// here must be unit length regardless of what the embedder returns.
	for i := range embeddings {
		records[i].Vector = core.NormalizeVector(embeddings[i])
	}

	if _, err := ep.recordRepository.UpdateRecords(ctx, records...); err != nil {
		return err
	}

	return nil
}
