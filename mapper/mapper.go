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
	"errors"
	"fmt"
	"maps"
	"strings"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/kind"
	"dirpx.dev/faults/mapper/internal/segmenttrie"
	"dirpx.dev/faults/reason"
	"google.golang.org/grpc/codes"
)

// New builds an immutable apis.Mapper.
//
// HTTP statuses always come from httpx.StatusOf. gRPC codes are resolved in
// this order:
//
//  1. the override of the failure's kind;
//  2. the longest prefix rule of the kind matching the failure's reason;
//  3. the built-in default of the variant.
//
// New fails on unknown kinds and malformed prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	tries := make(map[kind.Kind]*segmenttrie.Trie[codes.Code], len(b.prefixes))
	for k, rules := range b.prefixes {
		t := segmenttrie.New[codes.Code]()
		for _, r := range rules {
			p := reason.Normalize(r.prefix)
			if err := t.Insert(p, r.code); err != nil {
				b.errs = append(b.errs, fmt.Errorf("mapper: prefix %q for kind %q: %w", r.prefix, k, err))
			}
		}
		tries[k] = t
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	return &mapper{
		override: maps.Clone(b.override),
		tries:    tries,
	}, nil
}

// Default returns a mapper with the built-in rules only.
func Default() apis.Mapper {
	return &mapper{}
}

type mapper struct {
	override map[kind.Kind]codes.Code
	tries    map[kind.Kind]*segmenttrie.Trie[codes.Code]
}

// GRPCStatus resolves the gRPC code for f. A nil f maps to codes.Internal.
func (m *mapper) GRPCStatus(f faults.Failure) codes.Code {
	c, _ := m.resolve(f)
	return c
}

// Status resolves both transports for f.
func (m *mapper) Status(f faults.Failure) apis.Status {
	return apis.Status{HTTP: httpx.StatusOf(f), GRPC: m.GRPCStatus(f)}
}

// Explain describes how f was resolved:
//
//	kind="store_failure" reason="store.pg.unique_violation"
//	http: source=kind -> 500
//	grpc: source=prefix pattern="store.pg.unique_violation" -> AlreadyExists(6)
//
// The grpc source is one of override, prefix, default or fallback.
func (m *mapper) Explain(f faults.Failure) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q reason=%q\n", faults.KindOf(f), faults.ReasonOf(f))
	_, _ = fmt.Fprintf(&b, "http: source=kind -> %d\n", httpx.StatusOf(f))

	c, src := m.resolve(f)
	if src.pattern != "" {
		_, _ = fmt.Fprintf(&b, "grpc: source=%s pattern=%q -> %s(%d)", src.tier, src.pattern, c, int(c))
	} else {
		_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src.tier, c, int(c))
	}
	return b.String()
}

type source struct {
	tier    string
	pattern string
}

func (m *mapper) resolve(f faults.Failure) (codes.Code, source) {
	if f == nil {
		return codes.Internal, source{tier: "fallback"}
	}
	k := faults.KindOf(f)
	if c, ok := m.override[k]; ok {
		return c, source{tier: "override"}
	}
	if t := m.tries[k]; t != nil {
		if r := faults.ReasonOf(f); r != reason.Empty {
			if hit, ok := t.Lookup(string(r)); ok {
				return hit.Value, source{tier: "prefix", pattern: hit.Pattern}
			}
		}
	}
	return faults.Match[codes.Code](f, grpcDefaults{}), source{tier: "default"}
}
