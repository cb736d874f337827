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

// Package httpx is the HTTP projection of faults.
//
// Respond is the pure part: it maps a failure to a status and a body under a
// response policy (Options). Writer is the side-effecting part used by
// handlers: it writes that response and reports the failure to the logger,
// the metrics recorder and the active span.
//
// The policy only governs server faults. A store or cache failure exposes its
// cause when Options.IncludeCause is set and answers "Internal Server Error"
// otherwise; forbidden, not found and unauthorized always answer with their
// fixed text.
package httpx
