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

// Package tracex annotates the active OpenTelemetry span with failures.
package tracex

import (
	"context"

	"dirpx.dev/faults"
	"dirpx.dev/faults/reason"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys set on the span.
const (
	KindKey   = attribute.Key("fault.kind")
	ReasonKey = attribute.Key("fault.reason")
)

// Record annotates the span in ctx with f.
//
// Server faults are recorded as span errors. Client faults (forbidden,
// not found, unauthorized) are expected outcomes: they only get an event and
// leave the span status untouched.
func Record(ctx context.Context, f faults.Failure) {
	span := trace.SpanFromContext(ctx)
	if f == nil || !span.IsRecording() {
		return
	}

	k := faults.KindOf(f)
	attrs := []attribute.KeyValue{KindKey.String(k.String())}
	if r := faults.ReasonOf(f); r != reason.Empty {
		attrs = append(attrs, ReasonKey.String(r.String()))
	}
	span.SetAttributes(attrs...)

	if !k.ServerFault() {
		span.AddEvent("fault", trace.WithAttributes(attrs...))
		return
	}
	span.RecordError(f, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, k.String())
}
