// Copyright 2026 Dealrecall Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dealrecall

import (
	"io"
	"log/slog"

	"github.com/dealrecall/dealrecall/ai"
	"github.com/dealrecall/dealrecall/ai/openai"
	"github.com/dealrecall/dealrecall/answer"
	"github.com/dealrecall/dealrecall/ingestion"
	"github.com/dealrecall/dealrecall/reembed"
	"github.com/dealrecall/dealrecall/route"
	"github.com/dealrecall/dealrecall/storage"
	"github.com/dealrecall/dealrecall/storage/badger"
)

// Database bundles the storage backend, repositories and the embedding
// provider behind one handle, and builds the pipeline objects that operate
// on them.
type Database struct {
	backend        *badger.Backend
	recordRepo     storage.RecordRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	router         *route.Router
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	routingPath string
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithRoutingConfig loads conversation routes from the given JSON file and
// enables routing on answerers built from this database.
func WithRoutingConfig(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.routingPath = path
	}
}

// NewDatabase opens the database at filePath, creating it if absent.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	recordRepo, err := badger.NewRecordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		recordRepo.Close()
		backend.Close()
		return nil, err
	}

	var router *route.Router
	if options.routingPath != "" {
		router, err = route.RouterFromFile(options.routingPath)
		if err != nil {
			provider.Close()
			recordRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:        backend,
		recordRepo:     recordRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		router:         router,
		logger:         slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.recordRepo.Close(); err != nil {
		db.logger.Error("error closing record repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) RecordRepository() storage.RecordRepository {
	return db.recordRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

// NewAnswerer builds the query pipeline. The database's router, when
// configured, is applied unless the options override it.
func (db *Database) NewAnswerer(opts ...answer.AnswererOption) (*answer.Answerer, error) {
	if db.router != nil {
		opts = append([]answer.AnswererOption{answer.WithRouter(db.router)}, opts...)
	}
	return answer.NewAnswerer(db.recordRepo, db.provider.Embedder(), opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.recordRepo, db.checkpointRepo, db.provider, opts...)
}

// NewReembedder builds a reembedder writing progress to the given writer.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.recordRepo, db.provider.Embedder(), config, progress)
}
