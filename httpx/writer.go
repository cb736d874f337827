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

package httpx

import (
	"encoding/json"
	"net/http"

	"dirpx.dev/faults"
	"dirpx.dev/faults/adapter"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/faultlog"
	"dirpx.dev/faults/metrics"
	"dirpx.dev/faults/tracex"
	"github.com/rs/zerolog"
)

// Writer turns failures into HTTP responses.
//
// Besides writing the response it logs the failure (error level for 5xx,
// warn for 4xx), counts it and annotates the request span. Every field is
// optional; the zero Writer writes plain text and logs nowhere.
type Writer struct {
	Options Options

	// JSON switches the body from text/plain to an apis.View document.
	JSON bool

	Logger  *zerolog.Logger
	Metrics *metrics.Recorder
}

// Write answers r with err.
//
// err is expected to hold a faults.Failure somewhere in its chain. Any other
// error is answered as a hidden server fault and logged as unclassified.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	log := w.logger()

	f, ok := faults.From(err)
	if !ok {
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", http.StatusInternalServerError).
			Msg("unclassified error")
		w.write(rw, nil, Response{Status: http.StatusInternalServerError, Body: Generic})
		return
	}

	resp := Respond(f, w.Options)
	tracex.Record(r.Context(), f)
	w.Metrics.Record(metrics.HTTP, f)
	faultlog.Event(log, f).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", resp.Status).
		Msg("request failed")

	w.write(rw, f, resp)
}

// Handle adapts an error-returning handler. A non-nil error is passed to
// Write; the handler must not have written a response in that case.
func (w Writer) Handle(h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := h(rw, r); err != nil {
			w.Write(rw, r, err)
		}
	}
}

func (w Writer) write(rw http.ResponseWriter, f faults.Failure, resp Response) {
	rw.Header().Set("X-Content-Type-Options", "nosniff")
	if !w.JSON {
		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		rw.WriteHeader(resp.Status)
		_, _ = rw.Write([]byte(resp.Body))
		return
	}

	view := apis.View{Status: resp.Status, Error: resp.Body}
	if f != nil {
		view = adapter.ToView(f, apis.Status{HTTP: resp.Status}, resp.Body)
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(resp.Status)
	_ = json.NewEncoder(rw).Encode(view)
}

func (w Writer) logger() *zerolog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
