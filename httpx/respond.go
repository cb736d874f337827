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

package httpx

import (
	"net/http"

	"dirpx.dev/faults"
)

// Options is the response policy. It is fixed at startup and passed by value.
type Options struct {
	// IncludeCause exposes the rendering of store and cache failures,
	// cause included, in the response body. When false those failures
	// answer with the generic "Internal Server Error".
	IncludeCause bool
}

// Response is the HTTP projection of a failure.
type Response struct {
	Status int
	Body   string
}

// Generic is the body of a server fault whose cause is hidden.
const Generic = "Internal Server Error"

// Respond maps f to its HTTP status and body:
//
//	StoreFailure, CacheFailure  500  rendering, or Generic without IncludeCause
//	Forbidden                   403  "Forbidden"
//	NotFound                    404  "Not Found"
//	Unauthorized                401  "Unauthorized"
//
// Only server faults depend on opts. A nil f answers like a hidden server
// fault. Respond has no side effects.
func Respond(f faults.Failure, opts Options) Response {
	if f == nil {
		return Response{Status: http.StatusInternalServerError, Body: Generic}
	}
	return faults.Match[Response](f, responder{opts: opts, f: f})
}

// StatusOf returns the HTTP status of f. It never depends on Options.
func StatusOf(f faults.Failure) int {
	return Respond(f, Options{}).Status
}

type responder struct {
	opts Options
	f    faults.Failure
}

func (r responder) Store(error) Response { return r.serverFault() }
func (r responder) Cache(error) Response { return r.serverFault() }

func (responder) Forbidden() Response {
	return Response{Status: http.StatusForbidden, Body: "Forbidden"}
}

func (responder) NotFound() Response {
	return Response{Status: http.StatusNotFound, Body: "Not Found"}
}

func (responder) Unauthorized() Response {
	return Response{Status: http.StatusUnauthorized, Body: "Unauthorized"}
}

func (r responder) serverFault() Response {
	if r.opts.IncludeCause {
		return Response{Status: http.StatusInternalServerError, Body: faults.Render(r.f)}
	}
	return Response{Status: http.StatusInternalServerError, Body: Generic}
}
