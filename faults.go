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

	"dirpx.dev/faults/kind"
	"dirpx.dev/faults/reason"
)

// StoreWith tags err with r and classifies it as a StoreFailure.
//
//	return faults.StoreWith("store.pg.query", err)
func StoreWith(r reason.Reason, err error) Failure { return Store(reason.Wrap(r, err)) }

// CacheWith tags err with r and classifies it as a CacheFailure.
func CacheWith(r reason.Reason, err error) Failure { return Cache(reason.Wrap(r, err)) }

// From returns the outermost Failure found in err's chain.
func From(err error) (Failure, bool) {
	var f Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Classify returns the Failure already present in err's chain, or wrap(err)
// when there is none. It keeps a classified error from being classified twice
// as it travels up through several collaborators:
//
//	return faults.Classify(err, faults.Store)
//
// wrap must not be nil.
func Classify(err error, wrap func(error) Failure) Failure {
	if f, ok := From(err); ok {
		return f
	}
	return wrap(err)
}

// KindOf returns the taxonomy kind of f, or kind.Empty for a nil Failure.
func KindOf(f Failure) kind.Kind {
	if f == nil {
		return kind.Empty
	}
	return Match[kind.Kind](f, kinder{})
}

// ReasonOf returns the reason tagged onto f's cause, or reason.Empty.
func ReasonOf(f Failure) reason.Reason {
	if f == nil {
		return reason.Empty
	}
	return reason.Of(f.Cause())
}

// IsServerFault reports whether f was caused by a failing collaborator.
// A nil Failure is not a fault.
func IsServerFault(f Failure) bool {
	if f == nil {
		return false
	}
	return KindOf(f).ServerFault()
}

// Is reports whether err's chain holds a Failure of kind k.
func Is(err error, k kind.Kind) bool {
	f, ok := From(err)
	return ok && KindOf(f) == k
}

type kinder struct{}

func (kinder) Store(error) kind.Kind { return kind.StoreFailure }
func (kinder) Cache(error) kind.Kind { return kind.CacheFailure }
func (kinder) Forbidden() kind.Kind { return kind.Forbidden }
func (kinder) NotFound() kind.Kind { return kind.NotFound }
func (kinder) Unauthorized() kind.Kind { return kind.Unauthorized }

// ErrorKind implements apis.KindedError.
func (*StoreFailure) ErrorKind() kind.Kind { return kind.StoreFailure }

// ErrorKind implements apis.KindedError.
func (*CacheFailure) ErrorKind() kind.Kind { return kind.CacheFailure }

// ErrorKind implements apis.KindedError.
func (Forbidden) ErrorKind() kind.Kind { return kind.Forbidden }

// ErrorKind implements apis.KindedError.
func (NotFound) ErrorKind() kind.Kind { return kind.NotFound }

// ErrorKind implements apis.KindedError.
func (Unauthorized) ErrorKind() kind.Kind { return kind.Unauthorized }
