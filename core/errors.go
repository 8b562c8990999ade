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

import "errors"

// Domain validation errors
var (
	// ErrMalformedRecord indicates a Record failed validation.
	// Malformed records are rejected at load time and never reach scoring.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptyDealContext indicates the DealContext field is empty.
	ErrEmptyDealContext = errors.New("deal context cannot be empty")

	// ErrEmptyOutcome indicates the Outcome field is empty.
	ErrEmptyOutcome = errors.New("outcome cannot be empty")

	// ErrInvalidConversation indicates a non-positive conversation number.
	ErrInvalidConversation = errors.New("conversation number must be positive")

	// ErrDuplicateConversation indicates two records in one corpus share a
	// conversation number.
	ErrDuplicateConversation = errors.New("duplicate conversation number")
)
