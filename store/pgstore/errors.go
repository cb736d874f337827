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
	"errors"

	"dirpx.dev/faults"
	"dirpx.dev/faults/reason"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const base reason.Reason = "store.pg"

// UniqueViolation is the reason of a Create that hit a unique constraint,
// e.g. a username that is already registered.
const UniqueViolation reason.Reason = "store.pg.unique_violation"

// SQLSTATE codes with a reason of their own.
var codeReasons = map[string]string{
	"23505": "unique_violation",
	"23503": "foreign_key_violation",
	"23502": "not_null_violation",
	"23514": "check_violation",
	"40001": "serialization_failure",
	"40P01": "deadlock",
	"42P01": "undefined_table",
	"42703": "undefined_column",
	"53300": "too_many_connections",
	"57014": "canceled",
}

// SQLSTATE classes, keyed by the first two characters.
var classReasons = map[string]string{
	"08": "connection",
	"22": "data",
	"23": "constraint",
	"40": "rollback",
	"42": "syntax",
	"53": "resources",
	"57": "operator",
}

// classify turns a pgx error into a Failure. It is the only place this
// package builds failures from driver errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return faults.NotFound{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return faults.StoreWith(reasonFor(pgErr.Code), err)
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return faults.StoreWith(base.Join("timeout"), err)
	}
	return faults.Classify(err, func(err error) faults.Failure {
		return faults.StoreWith(base.Join("query"), err)
	})
}

// reasonFor maps a SQLSTATE to a reason: exact code, then class, then
// "store.pg.query".
func reasonFor(code string) reason.Reason {
	if r, ok := codeReasons[code]; ok {
		return base.Join(r)
	}
	if len(code) >= 2 {
		if r, ok := classReasons[code[:2]]; ok {
			return base.Join(r)
		}
	}
	return base.Join("query")
}
