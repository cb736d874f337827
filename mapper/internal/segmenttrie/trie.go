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

// Package segmenttrie is a prefix index over dot-separated reasons.
package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned by Insert for an empty prefix, an empty or
// malformed segment, or a prefix made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie maps reason prefixes to values and answers longest-prefix queries
// on segment boundaries: "store.pg" matches "store.pg.query" but not
// "store.pgx".
//
// A Trie is not safe for concurrent Insert. Once built, concurrent Lookup
// calls are safe.
type Trie[T any] struct {
	root *node[T]
	size int
}

// Hit is the result of a successful Lookup.
type Hit[T any] struct {
	Value T
	// Pattern is the prefix as inserted, wildcards included.
	Pattern string
}

type node[T any] struct {
	children map[string]*node[T]
	set      bool
	val      T
	pattern  string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{root: &node[T]{}}
}

// Len returns the number of distinct prefixes stored.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Insert stores val under prefix, replacing any previous value.
//
//	"store.pg"
//	"store.pg.unique_violation"
//	"store.*.timeout"
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPrefix
		}
		concrete = true
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	n := t.root
	for _, s := range segs {
		next := n.children[s]
		if next == nil {
			if n.children == nil {
				n.children = make(map[string]*node[T])
			}
			next = &node[T]{}
			n.children[s] = next
		}
		n = next
	}
	if !n.set {
		t.size++
	}
	n.set = true
	n.val = val
	n.pattern = prefix
	return nil
}

// Lookup returns the deepest stored prefix of key. At equal depth a
// concrete segment beats a wildcard. A malformed key only matches up to its
// first malformed segment.
func (t *Trie[T]) Lookup(key string) (Hit[T], bool) {
	if t == nil {
		return Hit[T]{}, false
	}
	best, depth := t.root.walk(key, 0, 0)
	if best == nil || depth == 0 {
		return Hit[T]{}, false
	}
	return Hit[T]{Value: best.val, Pattern: best.pattern}, true
}

// walk returns the deepest valued node reachable from n while consuming key
// from offset off. The concrete branch is tried first, so it wins ties.
func (n *node[T]) walk(key string, off, depth int) (*node[T], int) {
	var best *node[T]
	bestDepth := -1
	if n.set {
		best, bestDepth = n, depth
	}
	seg, next, ok := nextSegment(key, off)
	if !ok {
		return best, bestDepth
	}
	for _, label := range [2]string{seg, Wildcard} {
		child := n.children[label]
		if child == nil {
			continue
		}
		if got, d := child.walk(key, next, depth+1); got != nil && d > bestDepth {
			best, bestDepth = got, d
		}
	}
	return best, bestDepth
}

// nextSegment reads the segment starting at off and returns it together with
// the offset of the following one. ok is false at the end of key or on a
// malformed segment.
func nextSegment(key string, off int) (seg string, next int, ok bool) {
	if off >= len(key) {
		return "", off, false
	}
	end := strings.IndexByte(key[off:], '.')
	if end < 0 {
		end = len(key)
	} else {
		end += off
	}
	seg = key[off:end]
	if !validSegment(seg) {
		return "", off, false
	}
	if end < len(key) {
		end++
	}
	return seg, end, true
}

// validSegment reports whether s matches [a-z][a-z0-9_]*.
func validSegment(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
