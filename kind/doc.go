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

// Package kind names the members of the faults taxonomy as stable,
// machine-readable identifiers.
//
// A Kind is what ends up in log fields, metric labels, gRPC ErrorInfo reasons
// and JSON bodies, e.g. "store_failure" or "not_found". The set is closed:
// Parse only accepts the five identifiers declared in this package, so a
// string coming from config or the wire can never smuggle in a sixth kind.
//
// Switches over Kind are checked by the exhaustive linter (see .golangci.yml);
// a switch that forgets a member fails lint even if it has a default case.
package kind
