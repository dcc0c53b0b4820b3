package ai

import (
	"context"

	"github.com/poiesic/mailsift/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier classifies loan-servicing request emails.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// ClassifyEmail analyzes email text and returns the top request intents
	// with reasoning and confidence, plus the sub-request types present.
	// Returns an error if classification fails or the backend response
	// cannot be parsed.
	ClassifyEmail(ctx context.Context, text string) (*core.ClassificationResult, error)

	// SetAssistantID replaces the assistant identity used for subsequent
	// classifications. Safe to call concurrently with ClassifyEmail; calls
	// already in flight keep the identity they started with.
	SetAssistantID(id string)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Classifier instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the email classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
