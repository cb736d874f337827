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
	"fmt"
	"testing"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/kind"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFake() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *fakeClient) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if c.err != nil {
		return redis.NewStatusResult("", c.err)
	}
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprint(v)
	}
	c.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if c.err != nil {
		return redis.NewStringResult("", c.err)
	}
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if c.err != nil {
		return redis.NewIntResult(0, c.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCache_PutGetDrop(t *testing.T) {
	ctx := context.Background()
	client := newFake()
	c := New(client, 30*time.Minute)

	s := Session{ID: uuid.New(), UserID: uuid.New(), Username: "ada", Scopes: []string{"admin"}}
	require.NoError(t, c.Put(ctx, s))
	assert.Equal(t, 30*time.Minute, client.ttl[key(s.ID)])

	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Scopes, got.Scopes)
	assert.False(t, got.ExpiresAt.IsZero(), "Put must stamp an expiry")

	require.NoError(t, c.Drop(ctx, s.ID))
	assert.Equal(t, faults.NotFound{}, c.Drop(ctx, s.ID))

	_, err = c.Get(ctx, s.ID)
	assert.Equal(t, faults.NotFound{}, err)
}

func get(c *Cache) error {
	_, err := c.Get(context.Background(), uuid.New())
	return err
}

func put(c *Cache) error { return c.Put(context.Background(), Session{ID: uuid.New()}) }

func drop(c *Cache) error { return c.Drop(context.Background(), uuid.New()) }

func TestCache_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		op     func(*Cache) error
		reason string
	}{
		{
			name:   "get",
			err:    errors.New("connection reset"),
			op:     get,
			reason: "cache.redis.get",
		},
		{
			name:   "set",
			err:    errors.New("READONLY"),
			op:     put,
			reason: "cache.redis.set",
		},
		{
			name:   "del",
			err:    errors.New("LOADING"),
			op:     drop,
			reason: "cache.redis.del",
		},
		{
			name:   "net timeout",
			err:    fmt.Errorf("read: %w", timeoutErr{}),
			op:     get,
			reason: "cache.redis.timeout",
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			op:     drop,
			reason: "cache.redis.timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFake()
			client.err = tt.err

			f, ok := faults.From(tt.op(New(client, time.Minute)))
			require.True(t, ok)
			assert.Equal(t, kind.CacheFailure, faults.KindOf(f))
			assert.Equal(t, tt.reason, faults.ReasonOf(f).String())
			assert.ErrorIs(t, f, tt.err)
		})
	}
}

func TestCache_Get_Corrupt(t *testing.T) {
	client := newFake()
	id := uuid.New()
	client.data[key(id)] = "{not json"

	_, err := New(client, time.Minute).Get(context.Background(), id)
	f, ok := faults.From(err)
	require.True(t, ok)
	assert.Equal(t, kind.CacheFailure, faults.KindOf(f))
	assert.Equal(t, "cache.redis.decode", faults.ReasonOf(f).String())
}
