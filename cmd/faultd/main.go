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

// Command faultd is a small account server that runs the failure taxonomy
// end to end: PostgreSQL credentials, Redis sessions, JWT auth, HTTP and
// gRPC failure projection, logs, metrics and spans.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/account"
	"dirpx.dev/faults/authn"
	"dirpx.dev/faults/cache/rediscache"
	"dirpx.dev/faults/config"
	"dirpx.dev/faults/faultlog"
	"dirpx.dev/faults/grpcx"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/kind"
	"dirpx.dev/faults/logger"
	"dirpx.dev/faults/mapper"
	"dirpx.dev/faults/metrics"
	"dirpx.dev/faults/store/pgstore"
	"dirpx.dev/faults/tracex"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "faultd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	tp := tracex.NewProvider(cfg.Primary.ServiceName, cfg.Primary.Env, cfg.Tracing.SampleRatio, tracex.NewLogExporter(&log))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgstore.Connect(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		return startupFailed(&log, "postgres", err)
	}
	defer pool.Close()

	store := pgstore.New(pool)
	if err := store.Migrate(ctx); err != nil {
		return startupFailed(&log, "migrate", err)
	}

	rdb, err := rediscache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return startupFailed(&log, "redis", err)
	}
	defer func() { _ = rdb.Close() }()

	auth, err := authn.New(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	svc := account.New(store, rediscache.New(rdb, cfg.Redis.SessionTTL), auth, cfg.Redis.SessionTTL,
		account.WithAdmins(cfg.Auth.Admins...),
		account.WithLogger(&log),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := metrics.New(reg)

	opts := cfg.ResponseOptions()
	writer := httpx.Writer{Options: opts, JSON: cfg.Server.JSONErrors, Logger: &log, Metrics: rec}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: newRouter(deps{
			accounts: svc,
			auth:     auth,
			writer:   writer,
			gatherer: reg,
			tracer:   tp,
			log:      log,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 2)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	var gsrv *grpc.Server
	if cfg.Server.GRPCAddr != "" {
		gsrv, err = newGRPCServer(grpcx.Config{Options: opts, Logger: &log, Metrics: rec})
		if err != nil {
			return err
		}
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return fmt.Errorf("grpc: listen: %w", err)
		}
		go func() {
			log.Info().Str("addr", cfg.Server.GRPCAddr).Msg("grpc listening")
			if err := gsrv.Serve(lis); err != nil {
				errc <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errc:
		log.Error().Err(err).Msg("server stopped")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if gsrv != nil {
		gsrv.GracefulStop()
	}
	return srv.Shutdown(shutdownCtx)
}

// newGRPCServer returns a server whose handlers' failures are projected to
// gRPC statuses. Unique violations surface as AlreadyExists and cache
// timeouts as Unavailable.
func newGRPCServer(cfg grpcx.Config) (*grpc.Server, error) {
	m, err := mapper.New(
		mapper.WithGRPCPrefix(kind.StoreFailure, "store.pg.unique_violation", codes.AlreadyExists),
		mapper.WithGRPCPrefix(kind.StoreFailure, "store.pg.timeout", codes.DeadlineExceeded),
		mapper.WithGRPCPrefix(kind.CacheFailure, "cache.*.timeout", codes.Unavailable),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc: mapper: %w", err)
	}
	cfg.Mapper = m

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(cfg)))
	healthpb.RegisterHealthServer(s, health.NewServer())
	return s, nil
}

func startupFailed(log *zerolog.Logger, component string, err error) error {
	if f, ok := faults.From(err); ok {
		faultlog.Event(log, f).Str("component", component).Msg("startup failed")
	}
	return fmt.Errorf("%s: %w", component, err)
}
