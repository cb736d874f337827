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

// Descriptor is the flat, internal description of a failure: what goes to
// structured logs, traces and event payloads.
//
// Unlike View it always carries the full rendering, cause included. It must
// never be written to a client.
type Descriptor struct {
	// Kind is one of the kinds declared in package kind.
	Kind string `json:"kind"`

	// Reason is the optional refinement tagged onto the cause.
	Reason string `json:"reason,omitempty"`

	// Message is the full rendering, e.g. "Store error: connection refused".
	Message string `json:"message"`

	// HTTPStatus is the status the failure maps to over HTTP.
	HTTPStatus int `json:"http_status"`

	// GRPCCode is the gRPC code (as integer) the failure maps to.
	GRPCCode int `json:"grpc_code"`
}
