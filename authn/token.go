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

package authn

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/secret"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinKeyLength is the shortest accepted HS256 signing key, in bytes.
const MinKeyLength = 32

// ErrWeakKey is returned by New for a signing key shorter than MinKeyLength.
var ErrWeakKey = errors.New("authn: signing key is shorter than 32 bytes")

// Claims are the access token claims.
type Claims struct {
	SessionID string   `json:"sid"`
	Username  string   `json:"username"`
	Scopes    []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token grants scope.
func (c *Claims) HasScope(scope string) bool {
	return c != nil && slices.Contains(c.Scopes, scope)
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Session parses the session claim.
func (c *Claims) Session() (uuid.UUID, error) {
	return uuid.Parse(c.SessionID)
}

// Authenticator signs and verifies tokens with a single HS256 key.
type Authenticator struct {
	key    secret.Value
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// New returns an Authenticator. Tokens it issues live for ttl.
func New(key secret.Value, issuer string, ttl time.Duration) (*Authenticator, error) {
	if len(key.Reveal()) < MinKeyLength {
		return nil, ErrWeakKey
	}
	return &Authenticator{key: key, issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for a user's session.
func (a *Authenticator) Issue(userID, sessionID uuid.UUID, username string, scopes []string) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: sessionID.String(),
		Username:  username,
		Scopes:    scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString([]byte(a.key.Reveal()))
	if err != nil {
		return "", fmt.Errorf("authn: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates raw. Every rejection is faults.Unauthorized.
func (a *Authenticator) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, faults.Unauthorized{}
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return []byte(a.key.Reveal()), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return nil, faults.Unauthorized{}
	}
	if _, err := claims.UserID(); err != nil {
		return nil, faults.Unauthorized{}
	}
	if _, err := claims.Session(); err != nil {
		return nil, faults.Unauthorized{}
	}
	return claims, nil
}

// Authorize checks that c grants scope. An empty scope only requires a
// token.
func Authorize(c *Claims, scope string) error {
	if c == nil {
		return faults.Unauthorized{}
	}
	if scope != "" && !c.HasScope(scope) {
		return faults.Forbidden{}
	}
	return nil
}
