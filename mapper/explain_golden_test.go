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

package mapper

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/faults"
	"dirpx.dev/faults/kind"
	"google.golang.org/grpc/codes"
)

var update = flag.Bool("update", false, "update golden files")

// Update with: go test ./mapper -run Explain_Golden -update
func TestExplain_Golden(t *testing.T) {
	m, err := New(
		WithGRPCPrefix(kind.StoreFailure, "store.pg.unique_violation", codes.AlreadyExists),
		WithGRPCPrefix(kind.StoreFailure, "store.*.timeout", codes.DeadlineExceeded),
		WithGRPCOverride(kind.CacheFailure, codes.Unavailable),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cause := errors.New("boom")
	cases := []faults.Failure{
		faults.StoreWith("store.pg.unique_violation", cause),
		faults.StoreWith("store.pg.timeout", cause),
		faults.Cache(cause),
		faults.NotFound{},
		nil,
	}
	parts := make([]string, 0, len(cases))
	for _, f := range cases {
		parts = append(parts, m.Explain(f))
	}
	got := strings.Join(parts, "\n---\n") + "\n"

	goldenPath := filepath.Join("testdata", "explain.golden")
	if *update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v (run with -update to create)", err)
	}
	trim := func(s string) string { return strings.TrimRight(s, "\r\n") }
	if trim(string(want)) != trim(got) {
		t.Fatalf("Explain() output mismatch.\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}
