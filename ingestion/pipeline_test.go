package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealrecall/dealrecall/ai/mock"
	"github.com/dealrecall/dealrecall/core"
	"github.com/dealrecall/dealrecall/storage"
	"github.com/dealrecall/dealrecall/storage/badger"
)

func newTestPipeline(t *testing.T) (*Pipeline, storage.RecordRepository, storage.CheckpointRepository) {
	t.Helper()

	recordRepo, checkpointRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	pipeline, err := NewPipeline(recordRepo, checkpointRepo, mock.NewMockProvider(), WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, recordRepo, checkpointRepo
}

func TestIngestCorpus(t *testing.T) {
	pipeline, recordRepo, checkpointRepo := newTestPipeline(t)
	ctx := context.Background()

	stats, err := pipeline.IngestCorpus(ctx, sampleCorpus)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.False(t, stats.Skipped)

	pipeline.Wait()

	records, err := recordRepo.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// IDs follow document order and every record got a vector.
	for i, record := range records {
		assert.Equal(t, i+1, int(record.Id))
		assert.NotEmpty(t, record.Vector)
	}

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, DefaultCheckpointName)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, core.IDFromContent(sampleCorpus), checkpoint.Fingerprint)
}

func TestIngestCorpusSkipsUnchanged(t *testing.T) {
	pipeline, recordRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.IngestCorpus(ctx, sampleCorpus)
	require.NoError(t, err)
	pipeline.Wait()

	before, err := recordRepo.GetAllRecords(ctx)
	require.NoError(t, err)

	stats, err := pipeline.IngestCorpus(ctx, sampleCorpus)
	require.NoError(t, err)
	pipeline.Wait()

	assert.True(t, stats.Skipped)
	assert.Equal(t, 3, stats.Records)

	after, err := recordRepo.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Id, after[i].Id)
	}
}

func TestIngestCorpusReplacesChangedCorpus(t *testing.T) {
	pipeline, recordRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.IngestCorpus(ctx, sampleCorpus)
	require.NoError(t, err)
	pipeline.Wait()

	changed := `Conversation 1
Deal Context: A single remaining conversation.
Outcome: The only outcome.
`
	stats, err := pipeline.IngestCorpus(ctx, changed)
	require.NoError(t, err)
	pipeline.Wait()

	assert.False(t, stats.Skipped)
	assert.Equal(t, 1, stats.Records)

	count, err := recordRepo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestCorpusRejectsInvalidRecords(t *testing.T) {
	pipeline, recordRepo, _ := newTestPipeline(t)
	ctx := context.Background()

	corpus := `Conversation 1
Deal Context: Context without an outcome.
`
	_, err := pipeline.IngestCorpus(ctx, corpus)
	assert.ErrorIs(t, err, core.ErrEmptyOutcome)

	// A rejected document stores nothing.
	count, err := recordRepo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngestCorpusRejectsDuplicateConversations(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	corpus := `Conversation 1
Deal Context: first.
Outcome: first outcome.

Conversation 1
Deal Context: duplicate.
Outcome: duplicate outcome.
`
	_, err := pipeline.IngestCorpus(context.Background(), corpus)
	assert.ErrorIs(t, err, core.ErrDuplicateConversation)
}

func TestIngestCorpusNormalizesVectors(t *testing.T) {
	recordRepo, checkpointRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	// Non-unit embedder output must be normalized before it is stored,
	// otherwise dot-product similarity drifts away from cosine.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{3, 4}
		}
		return vectors, nil
	}

	pipeline, err := NewPipeline(recordRepo, checkpointRepo,
		mock.NewMockProviderWithEmbedder(embedder), WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	ctx := context.Background()
	_, err = pipeline.IngestCorpus(ctx, sampleCorpus)
	require.NoError(t, err)
	pipeline.Wait()

	records, err := recordRepo.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, record := range records {
		require.Len(t, record.Vector, 2)
		assert.InDelta(t, 0.6, record.Vector[0], 1e-6)
		assert.InDelta(t, 0.8, record.Vector[1], 1e-6)
	}
}

func TestNewPipelineValidation(t *testing.T) {
	recordRepo, checkpointRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	_, err = NewPipeline(nil, checkpointRepo, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrRecordRepositoryRequired)

	_, err = NewPipeline(recordRepo, nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)

	_, err = NewPipeline(recordRepo, checkpointRepo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}
