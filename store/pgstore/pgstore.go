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

package pgstore

import (
	"context"
	"fmt"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/credential"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// Store is the credential repository.
type Store struct {
	db Querier
}

// New returns a Store over db.
func New(db Querier) *Store {
	return &Store{db: db}
}

// Connect opens and pings a pool for dsn. maxConns <= 0 keeps the pgxpool
// default.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, faults.StoreWith("store.pg.config", fmt.Errorf("parse dsn: %w", err))
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, faults.StoreWith("store.pg.connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, faults.StoreWith("store.pg.connect", err)
	}
	return pool, nil
}

// Migrate creates the credentials table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, querySchema); err != nil {
		return classify(err)
	}
	return nil
}

// Create inserts c. A taken username is a StoreFailure with reason
// "store.pg.unique_violation".
func (s *Store) Create(ctx context.Context, c credential.Credential) error {
	_, err := s.db.Exec(ctx, queryCreate, c.ID, c.Username, c.Hash, c.CreatedAt)
	if err != nil {
		return classify(err)
	}
	return nil
}

// ByUsername loads the credential for username.
func (s *Store) ByUsername(ctx context.Context, username string) (credential.Credential, error) {
	var c credential.Credential
	err := s.db.QueryRow(ctx, queryByUsername, username).Scan(
		&c.ID,
		&c.Username,
		&c.Hash,
		&c.CreatedAt,
	)
	if err != nil {
		return credential.Credential{}, classify(err)
	}
	return c, nil
}

// Delete removes the credential with id. Deleting a missing row is NotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return faults.NotFound{}
	}
	return nil
}
