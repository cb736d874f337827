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

// Package mapper resolves failures into transport statuses.
//
// The HTTP status of a failure is fixed by its variant (see httpx.Respond)
// and is not configurable here. The gRPC code starts from a built-in default
// per variant:
//
//	StoreFailure, CacheFailure  Internal
//	Forbidden                   PermissionDenied
//	NotFound                    NotFound
//	Unauthorized                Unauthenticated
//
// and can be refined per kind, either outright or by the reason tagged onto
// the cause:
//
//	m, err := mapper.New(
//	    mapper.WithGRPCPrefix(kind.StoreFailure, "store.pg.unique_violation", codes.AlreadyExists),
//	    mapper.WithGRPCPrefix(kind.CacheFailure, "cache.*.timeout", codes.Unavailable),
//	)
//
// Prefix rules are segment-aware: "store.pg" matches "store.pg.query" but
// not "store.pgx". "*" matches exactly one segment, and the longest matching
// rule wins.
//
// A mapper is an immutable snapshot, safe for concurrent use. Explain prints
// which rule decided a given failure.
package mapper
