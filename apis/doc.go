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

// Package apis holds the small contracts shared by the faults transport
// packages: accessor interfaces implemented by failures, the Mapper that
// resolves transport statuses, and the two flat shapes a failure is turned
// into (Descriptor for logs, View for clients).
//
// It contains no logic and only depends on faults, kind and grpc/codes.
package apis
