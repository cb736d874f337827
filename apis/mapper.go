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

import (
	"dirpx.dev/faults"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of the transport rules.
// It resolves a failure into HTTP and gRPC statuses.
//
// The HTTP status of a failure is fixed by its kind and cannot be refined.
// The gRPC code may be refined per kind and per reason.
type Mapper interface {
	// GRPCStatus returns the gRPC code for f.
	GRPCStatus(f faults.Failure) codes.Code

	// Status resolves both HTTP and gRPC in a single call.
	Status(f faults.Failure) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(f faults.Failure) string
}

// Status is a resolved pair of transport statuses for a single failure.
type Status struct {
	HTTP int        // net/http status code.
	GRPC codes.Code // gRPC status code.
}
