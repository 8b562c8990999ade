package dealrecall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.RecordRepository())
		assert.NotNil(t, db.CheckpointRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file path instead of a directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("error with missing routing config", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir, WithRoutingConfig(filepath.Join(t.TempDir(), "missing.json")))
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)

	assert.NoError(t, db.Close())
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create answerer", func(t *testing.T) {
		answerer, err := db.NewAnswerer()
		require.NoError(t, err)
		require.NotNil(t, answerer)
	})

	t.Run("can create reembedder", func(t *testing.T) {
		reembedder := db.NewReembedder(nil, os.Stderr)
		require.NotNil(t, reembedder)
	})
}

func TestDatabase_RoutingConfig(t *testing.T) {
	routesPath := filepath.Join(t.TempDir(), "conversations.json")
	content := `{"conversations": [{"conversation": 6, "name": "CPI renewal", "keywords": ["cpi"]}]}`
	require.NoError(t, os.WriteFile(routesPath, []byte(content), 0o600))

	db, err := NewDatabase(t.TempDir(), WithRoutingConfig(routesPath))
	require.NoError(t, err)
	defer db.Close()

	require.NotNil(t, db.router)

	answerer, err := db.NewAnswerer()
	require.NoError(t, err)
	require.NotNil(t, answerer)
}
