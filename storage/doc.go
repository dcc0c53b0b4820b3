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


// Package storage provides the storage abstraction layer for mailsift.
//
// This package defines the repository interface that decouples storage
// implementation from business logic, allowing different backends (BadgerDB,
// in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.EmailRepository interface to enforce
// abstraction and enable alternative backends:
//
//	repo, err := badger.NewEmailRepository(backend)  // returns the concrete type
//	var r storage.EmailRepository = repo             // consumed via the interface
//
// # Architecture
//
// The storage layer follows the Repository pattern. EmailRepository combines
// record CRUD (append-only in the core flow), date/hash secondary indexes, and
// vector similarity search over stored embeddings.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Concurrent writers need no coordination:
// each request only appends its own record.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
