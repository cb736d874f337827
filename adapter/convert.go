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

package adapter

import (
	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
)

// ToDescriptor converts a failure together with its resolved transport status
// into a Descriptor.
//
// The descriptor is meant for structured logging, tracing or event payloads.
// It carries the full rendering, cause included.
func ToDescriptor(f faults.Failure, st apis.Status) apis.Descriptor {
	if f == nil {
		return apis.Descriptor{}
	}
	return apis.Descriptor{
		Kind:       string(faults.KindOf(f)),
		Reason:     string(faults.ReasonOf(f)),
		Message:    faults.Render(f),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
	}
}

// ToView converts a failure into a client-facing View.
//
// body is the text the response policy already chose for the client (see
// httpx.Respond). The reason is only copied when body exposes the cause.
func ToView(f faults.Failure, st apis.Status, body string) apis.View {
	if f == nil {
		return apis.View{}
	}
	v := apis.View{
		Status: st.HTTP,
		Kind:   string(faults.KindOf(f)),
		Error:  body,
	}
	if f.Cause() != nil && body == faults.Render(f) {
		v.Reason = string(faults.ReasonOf(f))
	}
	return v
}
