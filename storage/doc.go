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


// Package storage provides the storage abstraction layer for dealrecall.
//
// This package defines repository interfaces that decouple storage
// implementation from the ranking and ingestion logic, so different backends
// (BadgerDB, in-memory) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - RecordRepository: operations for conversation records, including
//     the linear-scan vector similarity search used to build shortlists
//   - CheckpointRepository: ingest checkpoints keyed by corpus name
//
// # Thread Safety
//
// All repository implementations must be thread-safe. The corpus is written
// during ingestion and read-only while queries are served, so concurrent
// queries share repositories without locking.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
