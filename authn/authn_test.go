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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/secret"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = secret.New("0123456789abcdef0123456789abcdef", secret.Secured)

func newAuth(t *testing.T) *Authenticator {
	t.Helper()
	a, err := New(testKey, "faultd", 15*time.Minute)
	require.NoError(t, err)
	return a
}

func TestNew_WeakKey(t *testing.T) {
	_, err := New(secret.New("short", secret.Secured), "faultd", time.Minute)
	assert.ErrorIs(t, err, ErrWeakKey)
}

func TestIssueVerify(t *testing.T) {
	a := newAuth(t)
	user, sess := uuid.New(), uuid.New()

	raw, err := a.Issue(user, sess, "ada", []string{"admin"})
	require.NoError(t, err)

	claims, err := a.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Username)
	assert.True(t, claims.HasScope("admin"))
	assert.False(t, claims.HasScope("root"))

	gotUser, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user, gotUser)
	gotSess, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, sess, gotSess)
}

func TestVerify_Rejects(t *testing.T) {
	a := newAuth(t)
	good, err := a.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)

	other, err := New(secret.New("ffffffffffffffffffffffffffffffff", secret.Secured), "faultd", time.Minute)
	require.NoError(t, err)
	foreign, err := other.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)

	wrongIssuer, err := New(testKey, "someone-else", time.Minute)
	require.NoError(t, err)
	misissued, err := wrongIssuer.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)

	expired := newAuth(t)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":         "",
		"garbage":       "not.a.token",
		"wrong key":     foreign,
		"wrong issuer":  misissued,
		"expired":       stale,
		"alg none":      none,
		"tampered tail": good[:len(good)-2] + "xx",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.Verify(raw)
			assert.Equal(t, faults.Unauthorized{}, err)
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Claims{Scopes: []string{"admin"}}

	assert.NoError(t, Authorize(admin, "admin"))
	assert.NoError(t, Authorize(&Claims{}, ""))
	assert.Equal(t, faults.Forbidden{}, Authorize(&Claims{}, "admin"))
	assert.Equal(t, faults.Unauthorized{}, Authorize(nil, "admin"))
}

func TestMiddleware(t *testing.T) {
	a := newAuth(t)
	w := httpx.Writer{}

	userToken, err := a.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)
	adminToken, err := a.Issue(uuid.New(), uuid.New(), "root", []string{"admin"})
	require.NoError(t, err)

	ok := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		c, found := FromContext(r.Context())
		require.True(t, found)
		_, _ = rw.Write([]byte("hello " + c.Username))
	})
	h := a.Authenticate(w)(Require(w, "admin")(ok))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, "Unauthorized"},
		{"basic auth", "Basic YWRhOnB3", http.StatusUnauthorized, "Unauthorized"},
		{"missing scope", "Bearer " + userToken, http.StatusForbidden, "Forbidden"},
		{"admin", "bearer " + adminToken, http.StatusOK, "hello root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestMiddleware_Check(t *testing.T) {
	a := newAuth(t)
	w := httpx.Writer{}
	raw, err := a.Issue(uuid.New(), uuid.New(), "ada", nil)
	require.NoError(t, err)

	revoked := func(_ context.Context, _ *Claims) error { return faults.Unauthorized{} }
	h := a.Authenticate(w, revoked)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_WithoutAuthenticate(t *testing.T) {
	h := Require(httpx.Writer{}, "")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
