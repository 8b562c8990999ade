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


package rank

import "errors"

var (
	// ErrDictionaryRequired is returned when a keyword dictionary is not provided.
	ErrDictionaryRequired = errors.New("keyword dictionary required")

	// ErrEmptyTerm indicates a dictionary entry with an empty term.
	ErrEmptyTerm = errors.New("empty dictionary term")

	// ErrInvalidWeight indicates a dictionary weight or threshold that is
	// zero or negative.
	ErrInvalidWeight = errors.New("invalid dictionary weight")

	// ErrInvalidThreshold indicates a similarity threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid similarity threshold")
)
