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

package rediscache

import (
	"context"
	"errors"
	"net"

	"dirpx.dev/faults"
	"dirpx.dev/faults/reason"
	"github.com/redis/go-redis/v9"
)

const base reason.Reason = "cache.redis"

// classify turns a go-redis error from op into a Failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return faults.NotFound{}
	}
	if isTimeout(err) {
		return faults.CacheWith(base.Join("timeout"), err)
	}
	return faults.CacheWith(base.Join(op), err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
