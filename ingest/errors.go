package ingest

import "errors"

var (
	// ErrEmailRepositoryRequired is returned when an email repository is not provided.
	ErrEmailRepositoryRequired = errors.New("email repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrNoContent is returned when a request yields no text at all.
	ErrNoContent = errors.New("no email content provided")
)
