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

package reason

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Reason is an optional, dot-separated refinement of a failure. Where the
// kind says what went wrong, the reason names the collaborator and the
// operation that failed, from the most general segment to the most specific:
//
//   - "store.pg.unique_violation"
//   - "store.pg.query"
//   - "cache.redis.timeout"
//   - "auth.jwt.expired"
//
// Reasons feed logs, metrics, span attributes and the gRPC mapper, which
// matches them by segment prefix ("store.pg" covers "store.pg.query"). They
// never change the HTTP status or body of a failure.
//
// The zero value is Empty, which means "no reason given" and is always valid.
type Reason string

// Length limits for a non-empty reason, in bytes.
//
// Three is the shortest useful identifier ("pg"-like names are too vague to
// act on). 128 leaves room for four descriptive segments.
const (
	MinLength = 3
	MaxLength = 128
)

// reasonFmt accepts 1 to 4 segments. A segment starts with a lowercase ASCII
// letter and continues with lowercase letters, digits or underscores.
//
// Accepted:
//
//	"store.pg.unique_violation"
//	"cache.redis"
//	"auth"
//
// Rejected:
//
//	"Store.PG"          (uppercase, unless normalized first)
//	"store..pg"         (empty segment)
//	"2fa.totp"          (digit first)
//	"a.b.c.d.e"         (five segments)
//
// The empty string never reaches this pattern.
const reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var reasonRe = regexp.MustCompile(reasonFmt)

// normalizer maps path and kebab separators onto the canonical ones.
var normalizer = strings.NewReplacer("/", ".", "-", "_")

var (
	// ErrReasonInvalidFormat is returned when a reason does not match the
	// segment grammar. The returned error wraps it and quotes the input.
	ErrReasonInvalidFormat = errors.New("faults: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is shorter than
	// MinLength or longer than MaxLength.
	ErrReasonInvalidLength = errors.New("faults: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty is the zero-value reason ("not provided"). Failures built without a
// reason carry it, and it survives Validate, MarshalText and Join unchanged.
var Empty Reason = ""

// Normalize brings free-form input closer to the canonical form:
//
//   - surrounding whitespace is trimmed
//   - letters are lowercased
//   - "/" becomes "." so import paths and URL paths can be reused
//   - "-" becomes "_" so kebab-case names line up with Go identifiers
//
// Normalize("Store/PG/unique-violation") == "store.pg.unique_violation".
// The result is not validated; use Parse for that.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return normalizer.Replace(strings.ToLower(s))
}

// Parse normalizes s and validates the result. Blank input parses to Empty
// without error, which is what keeps the reason optional. On error the
// returned Reason is Empty.
//
// Use Parse for input from config or the wire and MustParse for reasons
// declared in code.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is Parse for package-level declarations:
//
//	var reasonQuery = reason.MustParse("store.pg.query")
//
// It panics on invalid input and, unlike Parse, on blank input: a declared
// reason that turns out empty is a programming error.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("faults: empty reason in MustParse")
	}
	return r
}

// Validate reports whether r is canonical. Empty is valid; callers that need
// a reason must check for Empty themselves. Validate does not normalize, so
// Reason("Store.PG") is rejected even though Parse would accept it.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// Join appends segments to r, normalizing each one and skipping blanks:
//
//	reason.Reason("store.pg").Join("Unique-Violation") // "store.pg.unique_violation"
//	reason.Empty.Join("cache", "", "redis")            // "cache.redis"
//
// Join is how adapters derive per-operation reasons from a package base.
// The result is not validated, so a join past four segments fails later in
// Validate or MarshalText rather than here.
func (r Reason) Join(segs ...string) Reason {
	parts := make([]string, 0, len(segs)+1)
	if r != Empty {
		parts = append(parts, string(r))
	}
	for _, s := range segs {
		if s = Normalize(s); s != "" {
			parts = append(parts, s)
		}
	}
	return Reason(strings.Join(parts, "."))
}

// String returns r as is.
func (r Reason) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler. It refuses non-canonical
// reasons. Empty marshals to an empty, non-nil slice so JSON encoders write
// "" rather than null.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	if r == Empty {
		return []byte{}, nil
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler through Parse, so
// " Auth.JWT.Expired " decodes to "auth.jwt.expired" and blank text to Empty.
// r is left untouched on error.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if n := len(s); n < MinLength || n > MaxLength {
		return fmt.Errorf("%w: %d bytes in %q", ErrReasonInvalidLength, n, truncate(s))
	}
	if !reasonRe.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrReasonInvalidFormat, s)
	}
	return nil
}

// truncate keeps oversized input out of error messages.
func truncate(s string) string {
	const keep = 32
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "..."
}
