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


package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/core"
	"github.com/poiesic/mailsift/search"
	"github.com/poiesic/mailsift/storage"
)

// Pipeline orchestrates the processing of inbound emails.
// It manages concurrent attachment extraction and ties together
// classification, embedding, similarity search, and storage.
type Pipeline struct {
	repository  storage.EmailRepository
	classifier  ai.Classifier
	embedder    ai.Embedder
	searcher    *search.Searcher
	extractPool *ants.Pool
	maxSimilar  int
	logger      *slog.Logger
}

// Result is the outcome of processing one email.
type Result struct {
	// Record is the stored email record, with its assigned ID and timestamps.
	Record *core.EmailRecord

	// Duplicate reports whether a record with identical aggregate content
	// was already stored. Duplicates are stored anyway and flagged.
	Duplicate bool
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent attachment extraction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.extractPool != nil {
			p.extractPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.extractPool = pool
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

// WithMaxSimilar sets how many similar stored emails are attached to each
// processed record. Default is search.DefaultMaxHits.
func WithMaxSimilar(max int) Option {
	return func(p *Pipeline) error {
		if max < 1 {
			max = search.DefaultMaxHits
		}
		p.maxSimilar = max
		return nil
	}
}

// NewPipeline creates a new email processing pipeline.
func NewPipeline(
	repository storage.EmailRepository,
	provider ai.AIProvider,
	searcher *search.Searcher,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrEmailRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:  repository,
		classifier:  provider.Classifier(),
		embedder:    provider.Embedder(),
		searcher:    searcher,
		extractPool: pool,
		maxSimilar:  search.DefaultMaxHits,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Process runs the full workflow for one email: aggregate the text, classify
// it, embed it, find similar stored emails, and persist the record.
//
// The embedding is computed exactly once and reused for both the similarity
// query and the stored record.
func (p *Pipeline) Process(ctx context.Context, req *Request) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "mailsift-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	text, attachmentNames, err := p.buildAggregate(req, tmpDir)
	if err != nil {
		return nil, err
	}

	classification, err := p.classifier.ClassifyEmail(ctx, text)
	if err != nil {
		return nil, err
	}
	for _, intent := range classification.RequestIntents {
		if intent.ConfidenceScore < 0 || intent.ConfidenceScore > 1 {
			p.logger.Warn("confidence score out of range",
				"intent", intent.Intent, "confidence_score", intent.ConfidenceScore)
		}
	}

	vector, err := p.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	matches, err := p.searcher.FindSimilarByVector(ctx, vector, p.maxSimilar)
	if err != nil {
		return nil, err
	}
	similarEmails := make([]core.SimilarEmail, 0, len(matches))
	for _, match := range matches {
		similarEmails = append(similarEmails, core.SimilarEmail{
			Contents: match.Record.Contents,
			Score:    match.Score,
		})
	}

	contentHash := core.IDFromContent(text)
	existing, err := p.repository.FindByContentHash(ctx, contentHash)
	if err != nil {
		return nil, err
	}
	duplicate := len(existing) > 0
	if duplicate {
		p.logger.Warn("duplicate email content detected",
			"content_hash", contentHash, "existing_records", len(existing))
	}

	record := &core.EmailRecord{
		Contents:        text,
		Classification:  *classification,
		SimilarEmails:   similarEmails,
		ReceiverAddress: core.GenerateReceiverAddress(),
		AttachmentNames: attachmentNames,
		Vector:          vector,
		ContentHash:     contentHash,
		CreatedAt:       time.Now().UTC(),
	}

	stored, err := p.repository.AddEmailRecords(ctx, record)
	if err != nil {
		return nil, err
	}

	p.logger.Info("email processed",
		"record_id", stored[0].Id,
		"attachments", len(attachmentNames),
		"similar_emails", len(similarEmails),
		"duplicate", duplicate)

	return &Result{Record: stored[0], Duplicate: duplicate}, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.extractPool != nil {
		p.extractPool.Release()
	}
}
