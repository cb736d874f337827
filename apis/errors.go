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

package apis

import "dirpx.dev/faults/kind"

// KindedError is implemented by every faults variant. It lets code that does
// not want to import the root package read the kind of an error:
//
//	var ke apis.KindedError
//	if errors.As(err, &ke) && ke.ErrorKind() == kind.NotFound { ... }
//
// It is a read-only accessor. Branching over all kinds still belongs in a
// faults.Visitor.
type KindedError interface {
	error

	// ErrorKind returns one of the kinds declared in package kind.
	ErrorKind() kind.Kind
}

// ReasonedError is implemented by errors tagged with reason.Wrap.
//
// While the kind answers "what failed", the reason answers "where":
//
//	kind:   store_failure
//	reason: store.pg.unique_violation
//
// The returned value MAY be empty.
type ReasonedError interface {
	error

	// ErrorReason returns the dot-separated reason, or "".
	ErrorReason() string
}

// CausedError exposes the collaborator error a failure wraps.
// Parameterless variants return nil.
type CausedError interface {
	error

	// Cause returns the wrapped error, if any.
	Cause() error
}
