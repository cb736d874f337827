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

import "errors"

// Tagged is a collaborator error annotated with a Reason.
//
// Its Error output is exactly the wrapped error's, so tagging a cause never
// changes how a failure renders.
type Tagged struct {
	Reason Reason
	Err    error
}

// Wrap tags err with r. A nil err stays nil; an Empty r returns err unchanged.
func Wrap(r Reason, err error) error {
	if err == nil {
		return nil
	}
	if r == Empty {
		return err
	}
	return &Tagged{Reason: r, Err: err}
}

func (t *Tagged) Error() string {
	if t == nil || t.Err == nil {
		return "<nil>"
	}
	return t.Err.Error()
}

// Unwrap returns the tagged error.
func (t *Tagged) Unwrap() error {
	if t == nil {
		return nil
	}
	return t.Err
}

// ErrorReason exposes the reason to code that only knows apis.ReasonedError.
func (t *Tagged) ErrorReason() string {
	if t == nil {
		return ""
	}
	return string(t.Reason)
}

// Of returns the outermost Reason tagged onto err's chain, or Empty.
func Of(err error) Reason {
	var t *Tagged
	if errors.As(err, &t) && t != nil {
		return t.Reason
	}
	return Empty
}
