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

// Package faultlog renders failures into zerolog events.
package faultlog

import (
	"fmt"

	"dirpx.dev/faults"
	"dirpx.dev/faults/reason"
	"github.com/rs/zerolog"
)

// Object returns f as a zerolog object:
//
//	{"kind":"store_failure","reason":"store.pg.query","message":"Store error: ...","cause_type":"*pgconn.PgError"}
//
// The cause is logged in full. Log sinks are internal, unlike HTTP bodies.
func Object(f faults.Failure) zerolog.LogObjectMarshaler {
	return object{f: f}
}

type object struct {
	f faults.Failure
}

func (o object) MarshalZerologObject(e *zerolog.Event) {
	if o.f == nil {
		return
	}
	e.Str("kind", faults.KindOf(o.f).String())
	if r := faults.ReasonOf(o.f); r != reason.Empty {
		e.Str("reason", r.String())
	}
	e.Str("message", faults.Render(o.f))
	if c := o.f.Cause(); c != nil {
		e.Str("cause_type", fmt.Sprintf("%T", innermost(c)))
	}
}

// Event starts a log event for f on l: error level with the error attached
// for server faults, warn level otherwise. The failure is added under the
// "fault" key; the caller adds its own fields and calls Msg.
func Event(l *zerolog.Logger, f faults.Failure) *zerolog.Event {
	var e *zerolog.Event
	if faults.IsServerFault(f) {
		e = l.Error().Err(f)
	} else {
		e = l.Warn()
	}
	return e.Object("fault", Object(f))
}

func innermost(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}
