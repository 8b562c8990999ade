// Copyright 2026 Dealrecall Authors
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

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - DealContext must not be empty
//   - Outcome must not be empty
//   - Conversation number must be positive
//
// NOT validated (populated later):
//   - Vector (can be empty until the embedding processor runs)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrMalformedRecord)
	}

	if record.DealContext == "" {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, ErrEmptyDealContext)
	}

	if record.Outcome == "" {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, ErrEmptyOutcome)
	}

	if record.Conversation <= 0 {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, ErrInvalidConversation)
	}

	return nil
}

// ValidateCorpus validates a full set of records loaded from one corpus.
// Beyond per-record validation it enforces conversation number uniqueness,
// which is what keeps record ids stable across loads.
func ValidateCorpus(records []*Record) error {
	seen := make(map[int]bool, len(records))
	for _, record := range records {
		if err := ValidateRecord(record); err != nil {
			return err
		}
		if seen[record.Conversation] {
			return fmt.Errorf("%w: %w: conversation %d", ErrMalformedRecord, ErrDuplicateConversation, record.Conversation)
		}
		seen[record.Conversation] = true
	}
	return nil
}
