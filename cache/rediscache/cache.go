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
	"encoding/json"
	"fmt"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/secret"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "faults:session:"

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ Client = (*redis.Client)(nil)

// Session is an authenticated login.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Scopes    []string  `json:"scopes,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache stores sessions with a fixed TTL.
type Cache struct {
	client Client
	ttl    time.Duration
}

// New returns a Cache over client. Sessions expire after ttl.
func New(client Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// TTL returns the session lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Connect opens a client for addr and pings it.
func Connect(ctx context.Context, addr string, password secret.Value, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password.Reveal(),
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, classify("connect", err)
	}
	return client, nil
}

// Put stores s under its ID. A zero ExpiresAt is set from the cache TTL.
func (c *Cache) Put(ctx context.Context, s Session) error {
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = time.Now().UTC().Add(c.ttl)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return faults.CacheWith("cache.redis.encode", fmt.Errorf("encode session: %w", err))
	}
	if err := c.client.Set(ctx, key(s.ID), payload, c.ttl).Err(); err != nil {
		return classify("set", err)
	}
	return nil
}

// Get loads the session with id.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		return Session{}, classify("get", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, faults.CacheWith("cache.redis.decode", fmt.Errorf("decode session: %w", err))
	}
	return s, nil
}

// Drop deletes the session with id. Dropping a missing session is NotFound.
func (c *Cache) Drop(ctx context.Context, id uuid.UUID) error {
	n, err := c.client.Del(ctx, key(id)).Result()
	if err != nil {
		return classify("del", err)
	}
	if n == 0 {
		return faults.NotFound{}
	}
	return nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}
