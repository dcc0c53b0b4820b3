package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/core"
	"github.com/poiesic/mailsift/storage"
)

// DefaultMaxHits is the number of similar emails returned when the caller
// does not say otherwise.
const DefaultMaxHits = 5

// Searcher provides semantic similarity search over stored email records.
type Searcher struct {
	repository    storage.EmailRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity floor below which matches are
// discarded. Default is 0, which keeps every match up to the hit limit.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	repository storage.EmailRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if repository == nil {
		return nil, ErrEmailRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		repository: repository,
		embedder:   provider.Embedder(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for email records similar to the query text.
// Returns up to maxHits results, ranked by similarity score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches for email records similar to the query text
// with monitoring. The monitor receives callbacks at each stage.
// Returns up to maxHits results, ranked by similarity score.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(len(embedding))

	results, err := s.FindSimilarByVector(ctx, embedding, maxHits)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(results))
	for _, result := range results {
		ids = append(ids, uint64(result.Record.Id))
	}
	monitor.AfterVectorSearch(ids)
	monitor.Finish(results)

	return results, nil
}

// FindSimilarByVector searches for email records similar to an existing
// embedding. The ingestion pipeline uses this to reuse the vector it
// computed for storage instead of embedding the same text twice.
func (s *Searcher) FindSimilarByVector(ctx context.Context, vector []float32, maxHits int) ([]*core.SearchResult, error) {
	if maxHits <= 0 {
		maxHits = DefaultMaxHits
	}

	results, err := s.repository.FindSimilar(ctx, vector, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar records", "err", err)
		return nil, err
	}

	s.logger.Debug("vector search complete", "hits", len(results), "max_hits", maxHits)
	return results, nil
}
