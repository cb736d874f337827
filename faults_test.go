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

package faults

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"dirpx.dev/faults/kind"
	"dirpx.dev/faults/reason"
)

type panicky struct{}

func (panicky) Error() string { panic("boom") }

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		f    Failure
		want string
	}{
		{"store", Store(errors.New("disk full")), "Store error: disk full"},
		{"cache", Cache(errors.New("timeout")), "Cache error: timeout"},
		{"store refused", Store(errors.New("connection refused")), "Store error: connection refused"},
		{"store nil cause", Store(nil), "Store error: <nil>"},
		{"cache empty cause", Cache(errors.New("")), "Cache error: "},
		{"forbidden", Forbidden{}, "Forbidden"},
		{"not found", NotFound{}, "Not Found"},
		{"unauthorized", Unauthorized{}, "Unauthorized"},
		{"nil", nil, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.f); got != tt.want {
				t.Fatalf("Render = %q, want %q", got, tt.want)
			}
			if tt.f != nil && tt.f.Error() != tt.want {
				t.Fatalf("Error = %q, want %q", tt.f.Error(), tt.want)
			}
		})
	}
}

func TestRender_PanickingCauseDoesNotPanic(t *testing.T) {
	got := Render(Store(panicky{}))
	if !strings.HasPrefix(got, "Store error: ") {
		t.Fatalf("Render = %q", got)
	}
}

func TestRender_TaggedCauseUnchanged(t *testing.T) {
	f := StoreWith("store.pg.query", errors.New("disk full"))
	if got := Render(f); got != "Store error: disk full" {
		t.Fatalf("reason must not leak into rendering, got %q", got)
	}
	if got := ReasonOf(f); got != "store.pg.query" {
		t.Fatalf("ReasonOf = %q", got)
	}
}

func TestCause(t *testing.T) {
	base := errors.New("disk full")
	for _, f := range []Failure{Store(base), Cache(base)} {
		if f.Cause() != base {
			t.Fatalf("%T.Cause() = %v, want %v", f, f.Cause(), base)
		}
		if !errors.Is(f, base) {
			t.Fatalf("%T must unwrap to its cause", f)
		}
	}
	for _, f := range []Failure{Forbidden{}, NotFound{}, Unauthorized{}} {
		if f.Cause() != nil {
			t.Fatalf("%T must not carry a cause", f)
		}
		if errors.Unwrap(f) != nil {
			t.Fatalf("%T must not unwrap", f)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		f    Failure
		want kind.Kind
	}{
		{Store(io.EOF), kind.StoreFailure},
		{Cache(io.EOF), kind.CacheFailure},
		{Forbidden{}, kind.Forbidden},
		{NotFound{}, kind.NotFound},
		{Unauthorized{}, kind.Unauthorized},
		{nil, kind.Empty},
	}
	for _, tt := range tests {
		if got := KindOf(tt.f); got != tt.want {
			t.Fatalf("KindOf(%v) = %q, want %q", tt.f, got, tt.want)
		}
		if k, ok := tt.f.(interface{ ErrorKind() kind.Kind }); ok && k.ErrorKind() != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.f, k.ErrorKind(), tt.want)
		}
	}
}

func TestIsServerFault(t *testing.T) {
	if !IsServerFault(Store(nil)) || !IsServerFault(Cache(nil)) {
		t.Fatal("store and cache failures are server faults")
	}
	for _, f := range []Failure{Forbidden{}, NotFound{}, Unauthorized{}, nil} {
		if IsServerFault(f) {
			t.Fatalf("%v must not be a server fault", f)
		}
	}
}

func TestFromAndClassify(t *testing.T) {
	inner := Cache(errors.New("timeout"))
	wrapped := fmt.Errorf("load session: %w", inner)

	f, ok := From(wrapped)
	if !ok || f != inner {
		t.Fatalf("From = %v, %v", f, ok)
	}
	if got := Classify(wrapped, Store); got != inner {
		t.Fatalf("Classify must keep the existing failure, got %v", got)
	}
	if !Is(wrapped, kind.CacheFailure) || Is(wrapped, kind.StoreFailure) {
		t.Fatal("Is must match the kind in the chain")
	}

	raw := errors.New("connection refused")
	got := Classify(raw, Store)
	if KindOf(got) != kind.StoreFailure || got.Cause() != raw {
		t.Fatalf("Classify(raw) = %v", got)
	}
	if _, ok := From(raw); ok {
		t.Fatal("From must not find a failure in a raw error")
	}

	var nf NotFound
	if !errors.As(fmt.Errorf("x: %w", NotFound{}), &nf) {
		t.Fatal("errors.As must reach value variants")
	}
}

type counter struct{ seen map[string]int }

func (c counter) Store(error) int { c.seen["store"]++; return 1 }
func (c counter) Cache(error) int { c.seen["cache"]++; return 2 }
func (c counter) Forbidden() int { c.seen["forbidden"]++; return 3 }
func (c counter) NotFound() int { c.seen["not_found"]++; return 4 }
func (c counter) Unauthorized() int { c.seen["unauthorized"]++; return 5 }

func TestMatch(t *testing.T) {
	c := counter{seen: map[string]int{}}
	fs := []Failure{Store(nil), Cache(nil), Forbidden{}, NotFound{}, Unauthorized{}}
	for i, f := range fs {
		if got := Match[int](f, c); got != i+1 {
			t.Fatalf("Match(%v) = %d, want %d", f, got, i+1)
		}
	}
	if len(c.seen) != 5 {
		t.Fatalf("every variant must dispatch to its own method, got %v", c.seen)
	}
	if got := Match[int](nil, c); got != 0 {
		t.Fatalf("Match(nil) = %d, want zero value", got)
	}
}

func TestReasonOf_Empty(t *testing.T) {
	if ReasonOf(nil) != reason.Empty || ReasonOf(Forbidden{}) != reason.Empty {
		t.Fatal("failures without a tagged cause have no reason")
	}
	if ReasonOf(Store(errors.New("x"))) != reason.Empty {
		t.Fatal("untagged cause has no reason")
	}
}
