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


package mailsift

import (
	"log/slog"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/ai/assistant"
	"github.com/poiesic/mailsift/ingest"
	"github.com/poiesic/mailsift/search"
	"github.com/poiesic/mailsift/storage"
	"github.com/poiesic/mailsift/storage/badger"
)

// Service bundles the storage backend and AI provider behind one handle.
// It is the composition root for the CLI and the HTTP server.
type Service struct {
	backend   *badger.Backend
	emailRepo storage.EmailRepository
	provider  ai.AIProvider
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI configuration used to build the provider.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithAIProvider injects a pre-built provider, bypassing config-based
// construction. Used by tests to run the service against mocks.
func WithAIProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage opens the storage backend in memory instead of on disk.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens the storage backend at filePath and builds the AI provider.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	emailRepo, err := badger.NewEmailRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = assistant.NewProvider(options.aiConfig)
		if err != nil {
			emailRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:   backend,
		emailRepo: emailRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close shuts down the AI provider, the repository, and the backend.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.emailRepo.Close(); err != nil {
		s.logger.Error("error closing email repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// EmailRepository returns the email record repository.
func (s *Service) EmailRepository() storage.EmailRepository {
	return s.emailRepo
}

// Provider returns the AI provider.
func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewSearcher builds a searcher over the service's repository and provider.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.emailRepo, s.provider, opts...)
}

// NewPipeline builds an ingestion pipeline over the service's repository,
// provider, and a fresh searcher.
func (s *Service) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	searcher, err := s.NewSearcher()
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(s.emailRepo, s.provider, searcher, opts...)
}
