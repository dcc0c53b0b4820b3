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


package ai

import "errors"

var (
	// ErrBackendFailure indicates the AI backend reported a failed run or
	// returned an error response.
	ErrBackendFailure = errors.New("ai backend failure")

	// ErrInvalidPayload indicates the backend responded but its payload
	// could not be parsed into a classification result.
	ErrInvalidPayload = errors.New("invalid classification payload")

	// ErrEmptyResponse indicates the backend completed without producing
	// any response content.
	ErrEmptyResponse = errors.New("empty backend response")

	// ErrClassificationTimeout indicates a classification run did not reach
	// a terminal state within the configured poll timeout.
	ErrClassificationTimeout = errors.New("classification timed out")
)
