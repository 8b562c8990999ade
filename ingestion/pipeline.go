package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/dealrecall/dealrecall/ai"
	"github.com/dealrecall/dealrecall/core"
	"github.com/dealrecall/dealrecall/storage"
)

// DefaultCheckpointName is the name the ingest checkpoint is stored under.
const DefaultCheckpointName = "corpus"

// Pipeline orchestrates corpus ingestion: split the document into
// conversation records, validate them, replace the stored corpus, and
// generate embeddings asynchronously. A fingerprint checkpoint of the raw
// corpus text makes re-ingesting an unchanged document a no-op, which keeps
// record IDs and therefore tie-breaking stable across restarts.
type Pipeline struct {
	recordRepository     storage.RecordRepository
	checkpointRepository storage.CheckpointRepository
	embeddingPool        *ants.Pool
	embeddingProc        processor
	checkpointName       string
	pending              sync.WaitGroup
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding generation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithCheckpointName stores the ingest checkpoint under a different name,
// for corpora ingested side by side into one database.
func WithCheckpointName(name string) Option {
	return func(p *Pipeline) error {
		if name == "" {
			name = DefaultCheckpointName
		}
		p.checkpointName = name
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	recordRepository storage.RecordRepository,
	checkpointRepository storage.CheckpointRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		recordRepository:     recordRepository,
		checkpointRepository: checkpointRepository,
		embeddingPool:        embeddingPool,
		checkpointName:       DefaultCheckpointName,
		logger:               slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(recordRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// IngestStats reports what an ingest run did.
type IngestStats struct {
	// Records is the number of conversation records now in the corpus.
	Records int

	// Skipped is true when the corpus fingerprint matched the stored
	// checkpoint and nothing was re-ingested.
	Skipped bool
}

// IngestCorpus ingests a corpus document, replacing any previously stored
// corpus. Validation failures reject the whole document; a partially
// ingested corpus would silently change which records exist to answer from.
// Embedding generation runs asynchronously; call Wait before serving
// queries that need the fresh vectors.
func (p *Pipeline) IngestCorpus(ctx context.Context, corpusText string) (*IngestStats, error) {
	fingerprint := core.IDFromContent(corpusText)

	checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, p.checkpointName)
	if err != nil {
		return nil, fmt.Errorf("load ingest checkpoint: %w", err)
	}
	if checkpoint != nil && checkpoint.Fingerprint == fingerprint {
		count, countErr := p.recordRepository.CountRecords(ctx)
		if countErr != nil {
			return nil, countErr
		}
		if count > 0 {
			p.logger.Info("corpus unchanged, skipping ingest", "records", count)
			return &IngestStats{Records: count, Skipped: true}, nil
		}
	}

	records, err := SplitCorpus(corpusText)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateCorpus(records); err != nil {
		return nil, err
	}

	if err := p.replaceCorpus(ctx, records); err != nil {
		return nil, err
	}

	added, err := p.recordRepository.AddRecords(ctx, records...)
	if err != nil {
		return nil, err
	}

	p.logger.Info("corpus ingested", "records", len(added))

	ids := make([]core.ID, len(added))
	for i, record := range added {
		ids[i] = record.Id
	}

	p.pending.Add(1)
	if err := p.embeddingPool.Submit(func() {
		defer p.pending.Done()

		if procErr := p.embeddingProc.process(context.Background(), ids...); procErr != nil {
			p.logger.Error("error processing embeddings", "err", procErr)
			return
		}

		saveErr := p.checkpointRepository.SaveCheckpoint(context.Background(), &core.Checkpoint{
			Name:        p.checkpointName,
			Fingerprint: fingerprint,
			UpdatedAt:   time.Now().UTC(),
		})
		if saveErr != nil {
			p.logger.Error("error saving ingest checkpoint", "err", saveErr)
		}
	}); err != nil {
		p.pending.Done()
		return nil, err
	}

	return &IngestStats{Records: len(added)}, nil
}

// replaceCorpus deletes all previously stored records.
func (p *Pipeline) replaceCorpus(ctx context.Context, incoming []*core.Record) error {
	existing, err := p.recordRepository.GetAllRecords(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	ids := make([]core.ID, len(existing))
	for i, record := range existing {
		ids[i] = record.Id
	}
	if err := p.recordRepository.DeleteRecords(ctx, ids...); err != nil {
		return err
	}

	p.logger.Info("previous corpus removed",
		"removed", len(existing),
		"incoming", len(incoming))
	return nil
}

// Wait blocks until all submitted embedding work has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
