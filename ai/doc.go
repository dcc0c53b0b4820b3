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


// Package ai provides abstractions for the AI services used by Mailsift.
//
// This package defines interfaces for text embeddings and loan-servicing
// email classification. The ingestion pipeline and search layer depend on
// these abstractions rather than on concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Classifier: Classifies request intents and sub-requests in email text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/assistant: Production implementation backed by the OpenAI
//     Assistants API for classification and an OpenAI-compatible
//     embeddings endpoint for vectors
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in the implementation packages return interface types
// to enforce abstraction. Mock constructors return concrete types so tests
// can inject behavior and assert on call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithAssistantID("asst_abc123"),
//	)
//	provider, err := assistant.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "escrow question")
//	result, err := provider.Classifier().ClassifyEmail(ctx, emailText)
package ai
