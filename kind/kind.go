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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Kind is the canonical identifier of one faults taxonomy member.
//
// It is a separate type (not just string) so that raw user input cannot be
// mixed with validated identifiers by accident.
type Kind string

// The closed set of kinds. Two wrap collaborator errors, three are policy
// outcomes produced by the application itself.
const (
	// StoreFailure: a persistent-storage operation failed.
	StoreFailure Kind = "store_failure"

	// CacheFailure: a cache operation failed.
	CacheFailure Kind = "cache_failure"

	// Forbidden: the caller is authenticated but lacks permission.
	Forbidden Kind = "forbidden"

	// NotFound: the requested resource does not exist.
	NotFound Kind = "not_found"

	// Unauthorized: the caller is not authenticated.
	Unauthorized Kind = "unauthorized"
)

var (
	// ErrKindInvalid is returned when a value is not one of the declared kinds.
	ErrKindInvalid = errors.New("faults: invalid kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. It never names a taxonomy member.
var Empty Kind = ""

// All returns every kind in declaration order. The slice is freshly
// allocated on each call.
func All() []Kind {
	return []Kind{StoreFailure, CacheFailure, Forbidden, NotFound, Unauthorized}
}

// Parse normalizes s and checks it against the closed set.
func Parse(s string) (Kind, error) {
	k := Kind(Normalize(s))
	if err := Validate(k); err != nil {
		return Empty, err
	}
	return k, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize trims spaces, lowercases and turns '-' and ' ' into '_', so that
// "Not-Found" and "not found" both become "not_found". It does not validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate reports whether k is a member of the closed set.
func Validate(k Kind) error {
	switch k {
	case StoreFailure, CacheFailure, Forbidden, NotFound, Unauthorized:
		return nil
	}
	return ErrKindInvalid
}

// ServerFault reports whether k is caused by a failing collaborator rather
// than by the caller. Unknown kinds are treated as server faults.
func (k Kind) ServerFault() bool {
	//exhaustive:enforce
	switch k {
	case StoreFailure, CacheFailure:
		return true
	case Forbidden, NotFound, Unauthorized:
		return false
	}
	return true
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
