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

import "fmt"

// Failure is the closed set of failure variants known to this package.
//
// The set is sealed: the unexported accept method means only the five
// variants declared in this file can satisfy the interface. Consumers never
// type-switch on a Failure; they go through Match with a Visitor, so adding a
// variant is a compile error at every consumption site until it is handled.
//
// Every variant is a plain error: it renders itself through Render and exposes
// its optional underlying cause via Unwrap / Cause. None of them perform I/O.
type Failure interface {
	error

	// Cause returns the wrapped collaborator error, or nil for the
	// parameterless variants.
	Cause() error

	accept(d dispatcher)
}

// StoreFailure reports that a persistent-storage operation failed.
// The cause is carried opaquely and is never inspected by this package.
type StoreFailure struct {
	cause error
}

// CacheFailure reports that a cache operation failed.
// The cause is carried opaquely and is never inspected by this package.
type CacheFailure struct {
	cause error
}

// Forbidden reports that the caller lacks permission.
type Forbidden struct{}

// NotFound reports that the requested resource does not exist.
type NotFound struct{}

// Unauthorized reports that the caller is not authenticated.
type Unauthorized struct{}

// Store classifies a storage collaborator's error as a StoreFailure.
//
// Classification never fails: any error, including nil, is accepted and
// wrapped as-is.
func Store(err error) Failure { return &StoreFailure{cause: err} }

// Cache classifies a cache collaborator's error as a CacheFailure.
//
// Classification never fails: any error, including nil, is accepted and
// wrapped as-is.
func Cache(err error) Failure { return &CacheFailure{cause: err} }

func (e *StoreFailure) Error() string { return Render(e) }

// Unwrap returns the wrapped storage error, enabling errors.Is / errors.As.
func (e *StoreFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Cause returns the wrapped storage error.
func (e *StoreFailure) Cause() error { return e.Unwrap() }

func (e *StoreFailure) accept(d dispatcher) { d.store(e.Unwrap()) }

func (e *CacheFailure) Error() string { return Render(e) }

// Unwrap returns the wrapped cache error, enabling errors.Is / errors.As.
func (e *CacheFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Cause returns the wrapped cache error.
func (e *CacheFailure) Cause() error { return e.Unwrap() }

func (e *CacheFailure) accept(d dispatcher) { d.cache(e.Unwrap()) }

func (f Forbidden) Error() string { return Render(f) }
func (Forbidden) Unwrap() error { return nil }
func (Forbidden) Cause() error { return nil }
func (Forbidden) accept(d dispatcher) { d.forbidden() }
func (f NotFound) Error() string { return Render(f) }
func (NotFound) Unwrap() error { return nil }
func (NotFound) Cause() error { return nil }
func (NotFound) accept(d dispatcher) { d.notFound() }
func (f Unauthorized) Error() string { return Render(f) }
func (Unauthorized) Unwrap() error { return nil }
func (Unauthorized) Cause() error { return nil }
func (Unauthorized) accept(d dispatcher) { d.unauthorized() }

// Visitor handles every Failure variant. It is the only supported way to
// branch on a Failure.
//
// There is deliberately no fallback method: a new variant means a new method
// here, and every implementation stops compiling until it handles it.
type Visitor[T any] interface {
	Store(cause error) T
	Cache(cause error) T
	Forbidden() T
	NotFound() T
	Unauthorized() T
}

// Match dispatches f to the matching Visitor method and returns its result.
// A nil Failure yields the zero value of T.
func Match[T any](f Failure, v Visitor[T]) T {
	m := &match[T]{v: v}
	if f != nil {
		f.accept(m)
	}
	return m.out
}

// dispatcher is the non-generic bridge between the sealed variants and the
// generic Visitor; methods cannot be generic in Go.
type dispatcher interface {
	store(cause error)
	cache(cause error)
	forbidden()
	notFound()
	unauthorized()
}

type match[T any] struct {
	v   Visitor[T]
	out T
}

func (m *match[T]) store(cause error) { m.out = m.v.Store(cause) }
func (m *match[T]) cache(cause error) { m.out = m.v.Cache(cause) }
func (m *match[T]) forbidden() { m.out = m.v.Forbidden() }
func (m *match[T]) notFound() { m.out = m.v.NotFound() }
func (m *match[T]) unauthorized() { m.out = m.v.Unauthorized() }

// Render returns the stable human-readable form of f:
//
//	Store error: <cause>
//	Cache error: <cause>
//	Forbidden
//	Not Found
//	Unauthorized
//
// Render is total and never panics, even for nil causes or causes whose
// Error method panics.
func Render(f Failure) string {
	if f == nil {
		return "<nil>"
	}
	return Match[string](f, renderer{})
}

type renderer struct{}

func (renderer) Store(cause error) string { return "Store error: " + describe(cause) }
func (renderer) Cache(cause error) string { return "Cache error: " + describe(cause) }
func (renderer) Forbidden() string { return "Forbidden" }
func (renderer) NotFound() string { return "Not Found" }
func (renderer) Unauthorized() string { return "Unauthorized" }

// describe renders a cause through fmt, which turns nil into "<nil>" and
// recovers from panicking Error methods.
func describe(err error) string {
	return fmt.Sprint(err)
}
