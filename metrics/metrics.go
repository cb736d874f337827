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

// Package metrics counts failures per kind with Prometheus.
package metrics

import (
	"dirpx.dev/faults"
	"dirpx.dev/faults/kind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transport labels.
const (
	HTTP = "http"
	GRPC = "grpc"
)

// Recorder holds the failure counters. A nil *Recorder records nothing.
type Recorder struct {
	// Failures is faults_total{kind, transport}.
	Failures *prometheus.CounterVec
}

// New registers the counters on reg. Every kind starts at zero so dashboards
// see the full set before the first failure.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		Failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "faults_total",
			Help: "Failures written to a transport, by kind",
		}, []string{"kind", "transport"}),
	}
	for _, k := range kind.All() {
		for _, tr := range []string{HTTP, GRPC} {
			r.Failures.WithLabelValues(k.String(), tr)
		}
	}
	return r
}

// Record counts f once for the given transport.
func (r *Recorder) Record(transport string, f faults.Failure) {
	if r == nil || f == nil {
		return
	}
	r.Failures.WithLabelValues(faults.KindOf(f).String(), transport).Inc()
}
