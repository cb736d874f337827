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

const querySchema = `
CREATE TABLE IF NOT EXISTS credentials (
	id         uuid        PRIMARY KEY,
	username   text        NOT NULL UNIQUE,
	hash       text        NOT NULL,
	created_at timestamptz NOT NULL
)`

const queryCreate = `
INSERT INTO credentials (id, username, hash, created_at)
VALUES ($1, $2, $3, $4)`

const queryByUsername = `
SELECT id, username, hash, created_at
FROM credentials
WHERE username = $1`

const queryDelete = `
DELETE FROM credentials
WHERE id = $1`
