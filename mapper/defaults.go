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

package mapper

import "google.golang.org/grpc/codes"

// grpcDefaults is the built-in gRPC code of every variant.
type grpcDefaults struct{}

func (grpcDefaults) Store(error) codes.Code { return codes.Internal }
func (grpcDefaults) Cache(error) codes.Code { return codes.Internal }
func (grpcDefaults) Forbidden() codes.Code { return codes.PermissionDenied }
func (grpcDefaults) NotFound() codes.Code { return codes.NotFound }
func (grpcDefaults) Unauthorized() codes.Code { return codes.Unauthenticated }
