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

package mapper

import (
	"dirpx.dev/faults/kind"
	"google.golang.org/grpc/codes"
)

// Option configures a mapper at build time.
type Option func(*builder)

// WithGRPCOverride replaces the gRPC code of every failure of kind k.
// An override takes precedence over the prefix rules of k.
func WithGRPCOverride(k kind.Kind, c codes.Code) Option {
	return func(b *builder) {
		if b.checkKind(k) {
			b.override[k] = c
		}
	}
}

// WithGRPCPrefix maps failures of kind k whose reason starts with prefix to
// c. The longest matching prefix wins; "*" matches one segment.
//
//	WithGRPCPrefix(kind.StoreFailure, "store.pg.unique_violation", codes.AlreadyExists)
//	WithGRPCPrefix(kind.CacheFailure, "cache.*.timeout", codes.Unavailable)
func WithGRPCPrefix(k kind.Kind, prefix string, c codes.Code) Option {
	return func(b *builder) {
		if b.checkKind(k) {
			b.prefixes[k] = append(b.prefixes[k], prefixRule{prefix: prefix, code: c})
		}
	}
}
