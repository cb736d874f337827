/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package faults is a closed taxonomy of application failures together with
// their rendering rules.
//
// Two variants wrap an error from a collaborator:
//
//	faults.Store(err)  // persistent storage failed  -> "Store error: <cause>"
//	faults.Cache(err)  // cache failed               -> "Cache error: <cause>"
//
// Three are policy outcomes the application decides itself:
//
//	faults.Forbidden{}     -> "Forbidden"
//	faults.NotFound{}      -> "Not Found"
//	faults.Unauthorized{}  -> "Unauthorized"
//
// # Exhaustive handling
//
// Failure is a sealed interface. Code that needs to branch on it implements
// Visitor[T] and calls Match:
//
//	status := faults.Match[int](f, statusVisitor{})
//
// Visitor has exactly one method per variant and no fallback. A new variant
// adds a method, so every Visitor stops compiling until it handles the new
// case.
//
// # Subpackages
//
//   - kind: the closed enum of variant identifiers, for logs, metrics and JSON.
//   - reason: optional dot-separated refinements ("store.pg.query") attached
//     to a collaborator error before classification.
//   - httpx: the HTTP projection (status, body, IncludeCause policy).
//   - grpcx, mapper: the gRPC projection.
//   - secret: a string value that masks itself in every display path.
//
// The package performs no I/O and keeps no state; every value is immutable
// once built and safe for concurrent use.
package faults
