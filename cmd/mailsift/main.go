// Copyright 2025 Poiesic Systems
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
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/mailsift"
	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/ai/assistant"
	"github.com/poiesic/mailsift/extract"
	"github.com/poiesic/mailsift/ingest"
	"github.com/poiesic/mailsift/reembed"
	"github.com/poiesic/mailsift/server"
	"github.com/poiesic/mailsift/storage/badger"
)

func main() {
	// Local development keeps credentials in a .env file; absence is fine
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "mailsift",
		Usage: "Loan servicing email classification and similarity search",
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
				Name:   "serve",
				Usage:  "Run the email processing HTTP server",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8000",
					},
				}, dbAndAIFlags()...),
			},
			{
				Name:      "ingest",
				Usage:     "Process email files through the pipeline",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags:     dbAndAIFlags(),
			},
			{
				Name:      "search",
				Usage:     "Find stored emails similar to a query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
				}, dbAndAIFlags()...),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored emails with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "https://api.openai.com/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API bearer token",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
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
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbAndAIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "api-host",
			Usage:   "Assistants API host URL",
			Value:   "https://api.openai.com/v1",
			EnvVars: []string{"OPENAI_API_HOST"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API bearer token",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "assistant-id",
			Usage:   "Classification assistant identity",
			EnvVars: []string{"ASSISTANT_ID"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (defaults to the API host)",
			EnvVars: []string{"EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.DurationFlag{
			Name:  "poll-interval",
			Usage: "Delay between classification run status checks",
			Value: 2 * time.Second,
		},
		&cli.DurationFlag{
			Name:  "poll-timeout",
			Usage: "Total time budget for one classification run",
			Value: 2 * time.Minute,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithAPIHost(c.String("api-host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithAssistantID(c.String("assistant-id")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithPollInterval(c.Duration("poll-interval")),
		ai.WithPollTimeout(c.Duration("poll-timeout")),
	)
}

func openService(c *cli.Context) (*mailsift.Service, error) {
	return mailsift.NewService(c.String("db"), mailsift.WithAIConfig(aiConfigFromFlags(c)))
}

func serveCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	pipeline, err := svc.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	srv := server.NewServer(pipeline, svc.Provider().Classifier(), svc.EmailRepository())

	slog.Info("starting server", "addr", c.String("addr"))
	return srv.Run(c.String("addr"))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	pipeline, err := svc.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		result, err := pipeline.Process(c.Context, &ingest.Request{
			Primary: &extract.Artifact{Name: filepath.Base(path), Data: data},
		})
		if err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}

		record := result.Record
		fmt.Printf("%s: record %d, receiver %s", path, record.Id, record.ReceiverAddress)
		if result.Duplicate {
			fmt.Print(" (duplicate)")
		}
		fmt.Println()
		for _, intent := range record.Classification.RequestIntents {
			fmt.Printf("  %s [%0.2f]: %s\n", intent.Intent, intent.ConfidenceScore, intent.Reasoning)
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no query given")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.FindSimilar(ctx, query, c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%d)[%0.3f]\n", i, hit.Record.Contents, hit.Record.Id, hit.Score)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEmailRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	// Reembedding never runs a classification, so a placeholder assistant
	// identity satisfies config validation.
	aiConfig := ai.NewConfig(
		ai.WithAPIKey(c.String("api-key")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAssistantID("unused"),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := assistant.NewEmbedder(aiConfig)
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

	if err := reembedder.Run(ctx); err != nil {
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
