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
	"time"

	"dirpx.dev/faults/account"
	"dirpx.dev/faults/authn"
	"dirpx.dev/faults/cache/rediscache"
	"dirpx.dev/faults/credential"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/secret"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type accounts interface {
	Register(ctx context.Context, username string, password secret.Value) (credential.Credential, error)
	Login(ctx context.Context, username string, password secret.Value) (account.Login, error)
	Logout(ctx context.Context, claims *authn.Claims) error
	Session(ctx context.Context, claims *authn.Claims) (rediscache.Session, error)
	Live(ctx context.Context, claims *authn.Claims) error
}

type deps struct {
	accounts accounts
	auth     *authn.Authenticator
	writer   httpx.Writer
	gatherer prometheus.Gatherer
	tracer   trace.TracerProvider // nil uses the global provider
	log      zerolog.Logger
}

type credentialsRequest struct {
	Username string       `json:"username"`
	Password secret.Value `json:"password"`
}

func newRouter(d deps) http.Handler {
	w := d.writer

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(d.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, elapsed time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("elapsed", elapsed).
			Msg("request")
	}))
	r.Use(traced(d.tracer))

	r.Post("/register", w.Handle(func(rw http.ResponseWriter, r *http.Request) error {
		var req credentialsRequest
		if !decode(rw, r, &req) {
			return nil
		}
		c, err := d.accounts.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			return inputOr(rw, err)
		}
		writeJSON(rw, http.StatusCreated, map[string]string{"id": c.ID.String(), "username": c.Username})
		return nil
	}))

	r.Post("/login", w.Handle(func(rw http.ResponseWriter, r *http.Request) error {
		var req credentialsRequest
		if !decode(rw, r, &req) {
			return nil
		}
		login, err := d.accounts.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			return err
		}
		writeJSON(rw, http.StatusOK, login)
		return nil
	}))

	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(d.auth.Authenticate(w, d.accounts.Live))

		r.Get("/me", w.Handle(func(rw http.ResponseWriter, r *http.Request) error {
			claims, _ := authn.FromContext(r.Context())
			sess, err := d.accounts.Session(r.Context(), claims)
			if err != nil {
				return err
			}
			writeJSON(rw, http.StatusOK, sess)
			return nil
		}))

		r.Post("/logout", w.Handle(func(rw http.ResponseWriter, r *http.Request) error {
			claims, _ := authn.FromContext(r.Context())
			if err := d.accounts.Logout(r.Context(), claims); err != nil {
				return err
			}
			rw.WriteHeader(http.StatusNoContent)
			return nil
		}))

		r.With(authn.Require(w, account.AdminScope)).Get("/admin", func(rw http.ResponseWriter, r *http.Request) {
			claims, _ := authn.FromContext(r.Context())
			writeJSON(rw, http.StatusOK, map[string]string{"hello": claims.Username})
		})
	})

	return r
}

// inputOr answers input errors itself and hands every other error back.
func inputOr(rw http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, account.ErrInvalidUsername),
		errors.Is(err, credential.ErrEmpty),
		errors.Is(err, credential.ErrTooLong):
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return nil
	case errors.Is(err, account.ErrUsernameTaken):
		http.Error(rw, err.Error(), http.StatusConflict)
		return nil
	default:
		return err
	}
}

func decode(rw http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(rw, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(rw, "malformed request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

// traced runs every request inside a server span so failures written
// through httpx land on it.
func traced(tp trace.TracerProvider) func(http.Handler) http.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer("dirpx.dev/faults/cmd/faultd")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("http.request.method", r.Method)),
			)
			defer span.End()
			next.ServeHTTP(rw, r.WithContext(ctx))
		})
	}
}
