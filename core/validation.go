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


package core

import (
	"fmt"
	"time"
)

// ValidateEmailRecord validates an EmailRecord according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - ReceiverAddress must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated (populated by the pipeline or the model):
//   - Vector (can be empty until the embedding is computed)
//   - Classification confidence scores (passed through as returned by the model)
//   - ID (0 is valid from database sequences)
func ValidateEmailRecord(record *EmailRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEmailRecord)
	}

	if record.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmailRecord, ErrEmptyContents)
	}

	if record.ReceiverAddress == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEmailRecord, ErrEmptyReceiverAddress)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidEmailRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp returns true if the timestamp is not in the future.
// A small clock-skew allowance of one minute is permitted.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(time.Minute))
}
