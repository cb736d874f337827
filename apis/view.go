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

// View is the shape of a failure that is safe to send to a client as JSON.
//
//	{"status":500,"kind":"store_failure","error":"Internal Server Error"}
//
// Error carries the same text a plain-text response would. For server
// faults it only holds the cause when the response policy allows it.
type View struct {
	Status int    `json:"status"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`

	// Reason is set only alongside an exposed cause.
	Reason string `json:"reason,omitempty"`
}
