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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/account"
	"dirpx.dev/faults/authn"
	"dirpx.dev/faults/cache/rediscache"
	"dirpx.dev/faults/credential"
	"dirpx.dev/faults/grpcx"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/metrics"
	"dirpx.dev/faults/secret"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// stubAccounts knows one user, "ada" with password "pw", and a single live
// session.
type stubAccounts struct {
	auth    *authn.Authenticator
	userID  uuid.UUID
	session uuid.UUID
	scopes  []string
	fail    error
}

func (s *stubAccounts) Register(_ context.Context, username string, password secret.Value) (credential.Credential, error) {
	switch {
	case s.fail != nil:
		return credential.Credential{}, s.fail
	case username == "ada":
		return credential.Credential{}, account.ErrUsernameTaken
	case username == "":
		return credential.Credential{}, account.ErrInvalidUsername
	case password.IsEmpty():
		return credential.Credential{}, credential.ErrEmpty
	}
	return credential.Credential{ID: uuid.New(), Username: username}, nil
}

func (s *stubAccounts) Login(_ context.Context, username string, password secret.Value) (account.Login, error) {
	if s.fail != nil {
		return account.Login{}, s.fail
	}
	if username != "ada" || password.Reveal() != "pw" {
		return account.Login{}, faults.Unauthorized{}
	}
	token, err := s.auth.Issue(s.userID, s.session, "ada", s.scopes)
	if err != nil {
		return account.Login{}, err
	}
	return account.Login{Token: token, SessionID: s.session}, nil
}

func (s *stubAccounts) Logout(context.Context, *authn.Claims) error { return nil }

func (s *stubAccounts) Session(_ context.Context, c *authn.Claims) (rediscache.Session, error) {
	return rediscache.Session{ID: s.session, UserID: s.userID, Username: c.Username}, nil
}

func (s *stubAccounts) Live(_ context.Context, c *authn.Claims) error {
	if c.SessionID != s.session.String() {
		return faults.Unauthorized{}
	}
	return nil
}

type server struct {
	handler http.Handler
	stub    *stubAccounts
	reg     *prometheus.Registry
	spans   *tracetest.SpanRecorder
}

func newServer(t *testing.T, opts httpx.Options) server {
	t.Helper()
	auth, err := authn.New(secret.New("0123456789abcdef0123456789abcdef", secret.Secured), "faultd", time.Hour)
	require.NoError(t, err)

	stub := &stubAccounts{auth: auth, userID: uuid.New(), session: uuid.New()}
	reg := prometheus.NewRegistry()
	w := httpx.Writer{Options: opts, Metrics: metrics.New(reg)}
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return server{
		handler: newRouter(deps{
			accounts: stub,
			auth:     auth,
			writer:   w,
			gatherer: reg,
			tracer:   tp,
			log:      zerolog.Nop(),
		}),
		stub:  stub,
		reg:   reg,
		spans: spans,
	}
}

func (s server) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s server) token(t *testing.T) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/login", `{"username":"ada","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login account.Login
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	return login.Token
}

func TestRegister(t *testing.T) {
	s := newServer(t, httpx.Options{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"created", `{"username":"grace","password":"cobol"}`, http.StatusCreated},
		{"taken", `{"username":"ada","password":"pw"}`, http.StatusConflict},
		{"bad username", `{"username":"","password":"pw"}`, http.StatusBadRequest},
		{"empty password", `{"username":"grace","password":""}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusBadRequest},
		{"unknown field", `{"user":"grace"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/register", tt.body, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginAndMe(t *testing.T) {
	s := newServer(t, httpx.Options{})

	rec := s.do(http.MethodPost, "/login", `{"username":"ada","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())

	token := s.token(t)

	rec = s.do(http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var sess rediscache.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "ada", sess.Username)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/me", "", "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/logout", "", token).Code)
}

func TestAdmin(t *testing.T) {
	s := newServer(t, httpx.Options{})

	rec := s.do(http.MethodGet, "/admin", "", s.token(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", rec.Body.String())

	s.stub.scopes = []string{account.AdminScope}
	rec = s.do(http.MethodGet, "/admin", "", s.token(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hello":"ada"}`, rec.Body.String())
}

func TestStoreFailure(t *testing.T) {
	for _, tt := range []struct {
		name string
		opts httpx.Options
		body string
	}{
		{"with cause", httpx.Options{IncludeCause: true}, "Store error: connection refused"},
		{"hidden", httpx.Options{}, "Internal Server Error"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, tt.opts)
			s.stub.fail = faults.StoreWith("store.pg.connection", errors.New("connection refused"))

			rec := s.do(http.MethodPost, "/login", `{"username":"ada","password":"pw"}`, "")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestMetrics(t *testing.T) {
	s := newServer(t, httpx.Options{})
	s.do(http.MethodGet, "/me", "", "")

	rec := s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `faults_total{kind="unauthorized",transport="http"} 1`)
}

func TestTracing(t *testing.T) {
	s := newServer(t, httpx.Options{})

	rec := s.do(http.MethodGet, "/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ended := s.spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "GET /me", span.Name())

	var kind string
	for _, kv := range span.Attributes() {
		if kv.Key == "fault.kind" {
			kind = kv.Value.AsString()
		}
	}
	assert.Equal(t, "unauthorized", kind)
}

func TestTracing_RemoteParent(t *testing.T) {
	s := newServer(t, httpx.Options{})
	defer func(p propagation.TextMapPropagator) { otel.SetTextMapPropagator(p) }(otel.GetTextMapPropagator())
	otel.SetTextMapPropagator(propagation.TraceContext{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	s.handler.ServeHTTP(httptest.NewRecorder(), req)

	ended := s.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", ended[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", ended[0].Parent().SpanID().String())
}

func TestGRPCServer(t *testing.T) {
	gs, err := newGRPCServer(grpcx.Config{})
	require.NoError(t, err)
	assert.Contains(t, gs.GetServiceInfo(), "grpc.health.v1.Health")
}
