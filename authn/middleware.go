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
	"strings"

	"dirpx.dev/faults/httpx"
)

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying c.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// FromContext returns the claims stored by Authenticate.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// Check is an extra test run on verified claims, e.g. that the session is
// still live. Its error is written as-is.
type Check func(ctx context.Context, c *Claims) error

// Authenticate verifies the bearer token of every request and stores the
// claims in the request context. Requests without a valid token are answered
// through w.
func (a *Authenticator) Authenticate(w httpx.Writer, checks ...Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			claims, err := a.Verify(bearer(r))
			if err != nil {
				w.Write(rw, r, err)
				return
			}
			for _, check := range checks {
				if err := check(r.Context(), claims); err != nil {
					w.Write(rw, r, err)
					return
				}
			}
			next.ServeHTTP(rw, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// Require answers with Forbidden unless the authenticated token grants
// scope, and with Unauthorized when Authenticate did not run first.
func Require(w httpx.Writer, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			claims, _ := FromContext(r.Context())
			if err := Authorize(claims, scope); err != nil {
				w.Write(rw, r, err)
				return
			}
			next.ServeHTTP(rw, r)
		})
	}
}

func bearer(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
