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
	"errors"
	"testing"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestToDescriptor(t *testing.T) {
	f := faults.StoreWith("store.pg.connect", errors.New("connection refused"))
	d := ToDescriptor(f, apis.Status{HTTP: 500, GRPC: codes.Internal})

	assert.Equal(t, apis.Descriptor{
		Kind:       "store_failure",
		Reason:     "store.pg.connect",
		Message:    "Store error: connection refused",
		HTTPStatus: 500,
		GRPCCode:   int(codes.Internal),
	}, d)
	assert.Equal(t, apis.Descriptor{}, ToDescriptor(nil, apis.Status{}))
}

func TestToView(t *testing.T) {
	f := faults.CacheWith("cache.redis.timeout", errors.New("timeout"))
	st := apis.Status{HTTP: 500, GRPC: codes.Internal}

	exposed := ToView(f, st, "Cache error: timeout")
	assert.Equal(t, "cache.redis.timeout", exposed.Reason)
	assert.Equal(t, "cache_failure", exposed.Kind)
	assert.Equal(t, 500, exposed.Status)

	hidden := ToView(f, st, "Internal Server Error")
	assert.Empty(t, hidden.Reason, "reason must not leak when the cause is hidden")
	assert.Equal(t, "Internal Server Error", hidden.Error)

	nf := ToView(faults.NotFound{}, apis.Status{HTTP: 404, GRPC: codes.NotFound}, "Not Found")
	assert.Equal(t, apis.View{Status: 404, Kind: "not_found", Error: "Not Found"}, nf)

	assert.Equal(t, apis.View{}, ToView(nil, st, ""))
}
