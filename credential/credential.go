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

// Package credential hashes and verifies account passwords.
package credential

import (
	"errors"
	"fmt"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/secret"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Input errors. They describe a bad request, not a failure, and are
// returned as-is.
var (
	ErrEmpty   = errors.New("credential: password is empty")
	ErrTooLong = errors.New("credential: password is longer than 72 bytes")
)

// Credential is the stored form of an account's password.
type Credential struct {
	ID        uuid.UUID
	Username  string
	Hash      string
	CreatedAt time.Time
}

// Hasher hashes with a fixed bcrypt cost. The zero Hasher uses
// bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// New builds a Credential for username, hashing password.
func (h Hasher) New(username string, password secret.Value) (Credential, error) {
	hash, err := h.Hash(password)
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		ID:        uuid.New(),
		Username:  username,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Hash returns the bcrypt hash of password.
func (h Hasher) Hash(password secret.Value) (string, error) {
	if password.IsEmpty() {
		return "", ErrEmpty
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password.Reveal()), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", fmt.Errorf("credential: hash: %w", err)
	}
	return string(hashed), nil
}

// Verify checks password against a stored hash.
//
// A mismatch is faults.Unauthorized. A hash that bcrypt cannot read was
// corrupted in storage and is reported as a store failure.
func Verify(hash string, password secret.Value) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password.Reveal()))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return faults.Unauthorized{}
	default:
		return faults.StoreWith("store.credential.corrupt", err)
	}
}
