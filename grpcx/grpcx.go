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

// Package grpcx is the gRPC projection of faults.
package grpcx

import (
	"context"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/faultlog"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/mapper"
	"dirpx.dev/faults/metrics"
	"dirpx.dev/faults/reason"
	"dirpx.dev/faults/tracex"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
)

// Domain is the ErrorInfo domain of every status built here.
const Domain = "faults.dirpx.dev"

// Status builds the gRPC status of f.
//
// The code comes from m, or mapper.Default when m is nil. The message
// follows the same policy as HTTP bodies, so a hidden cause stays hidden.
// An errdetails.ErrorInfo carries the kind as its reason; the fault reason
// is added to its metadata only when the cause is exposed.
func Status(f faults.Failure, m apis.Mapper, opts httpx.Options) *gstatus.Status {
	if m == nil {
		m = mapper.Default()
	}
	body := httpx.Respond(f, opts).Body
	base := gstatus.New(m.GRPCStatus(f), body)
	if f == nil {
		return base
	}

	info := &errdetails.ErrorInfo{
		Reason: faults.KindOf(f).String(),
		Domain: Domain,
	}
	if r := faults.ReasonOf(f); r != reason.Empty && body == faults.Render(f) {
		info.Metadata = map[string]string{"reason": r.String()}
	}
	if with, err := base.WithDetails(info); err == nil {
		return with
	}
	return base
}

// Config wires the interceptor. A nil Mapper means mapper.Default; Logger
// and Metrics are optional.
type Config struct {
	Mapper  apis.Mapper
	Options httpx.Options
	Logger  *zerolog.Logger
	Metrics *metrics.Recorder
}

// UnaryServerInterceptor converts failures returned by handlers into gRPC
// statuses. Errors that hold no failure are returned as-is.
func UnaryServerInterceptor(cfg Config) grpc.UnaryServerInterceptor {
	if cfg.Mapper == nil {
		cfg.Mapper = mapper.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		f, ok := faults.From(err)
		if !ok {
			return nil, err
		}

		tracex.Record(ctx, f)
		cfg.Metrics.Record(metrics.GRPC, f)
		if cfg.Logger != nil {
			faultlog.Event(cfg.Logger, f).Str("method", info.FullMethod).Msg("rpc failed")
		}
		return nil, Status(f, cfg.Mapper, cfg.Options).Err()
	}
}

// ExtractInfo returns the ErrorInfo attached by Status, if err carries one.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := gstatus.FromError(err)
	if !ok || st == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}
