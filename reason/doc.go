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

// Package reason defines an optional, structured refinement for failures.
//
// Where a kind answers "what went wrong" (store_failure, unauthorized, ...),
// a reason answers "where": "store.pg.query", "cache.redis.timeout",
// "auth.jwt.expired".
//
// Collaborators attach a reason to their own error with Wrap before handing
// it to faults.Store / faults.Cache. The faults package never looks inside
// the cause; loggers and mappers recover the reason with Of.
package reason
