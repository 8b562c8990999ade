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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dealrecall/dealrecall"
	"github.com/dealrecall/dealrecall/ai"
	"github.com/dealrecall/dealrecall/ai/openai"
	"github.com/dealrecall/dealrecall/answer"
	"github.com/dealrecall/dealrecall/ingestion"
	"github.com/dealrecall/dealrecall/reembed"
	"github.com/dealrecall/dealrecall/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "dealrecall",
		Usage: "Deterministic answer retrieval over a sales conversation corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a corpus document, replacing the stored corpus",
				ArgsUsage: "<corpus-file>",
				Action:    ingestCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for embedding generation",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the corpus",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:  "routes",
						Usage: "Path to conversation routing config (JSON)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Semantic shortlist size",
						Value: answer.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Similarity floor for the semantic shortlist",
						Value: float64(answer.DefaultMinSimilarity),
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for all stored records",
				Action: reembedCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one corpus file argument")
	}

	corpus, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := dealrecall.NewDatabase(c.String("db"), dealrecall.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var pipelineOpts []ingestion.Option
	if c.IsSet("pool-size") {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := db.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	stats, err := pipeline.IngestCorpus(context.Background(), string(corpus))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if stats.Skipped {
		fmt.Printf("Corpus unchanged, %d records already ingested\n", stats.Records)
		return nil
	}

	fmt.Fprintf(os.Stderr, "Ingested %d records, generating embeddings...\n", stats.Records)
	pipeline.Wait()
	fmt.Printf("Ingested %d records\n", stats.Records)
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("expected a question argument")
	}
	question := strings.Join(c.Args().Slice(), " ")

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	dbOpts := []dealrecall.DatabaseOption{dealrecall.WithAIConfig(aiConfig)}
	if routes := c.String("routes"); routes != "" {
		dbOpts = append(dbOpts, dealrecall.WithRoutingConfig(routes))
	}

	db, err := dealrecall.NewDatabase(c.String("db"), dbOpts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	answerer, err := db.NewAnswerer(
		answer.WithTopK(c.Int("top-k")),
		answer.WithMinSimilarity(float32(c.Float64("min-similarity"))),
	)
	if err != nil {
		return fmt.Errorf("failed to create answerer: %w", err)
	}

	result, err := answerer.Ask(context.Background(), question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if !result.Matched {
		fmt.Println("No matching conversation found.")
		return nil
	}

	fmt.Printf("%s\n\nSource: %s\n", result.AnswerText, result.SourceLabel)
	return nil
}

func reembedCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewRecordRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
