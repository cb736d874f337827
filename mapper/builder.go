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
	"fmt"

	"dirpx.dev/faults/kind"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw reason prefix as given by the caller; it is
	// normalized when the trie is built.
	prefix string
	code   codes.Code
}

type builder struct {
	// override replaces the default code of a kind outright.
	override map[kind.Kind]codes.Code
	// prefixes refine a kind by reason, longest prefix first.
	prefixes map[kind.Kind][]prefixRule

	// errs collects option errors; New reports them all at once.
	errs []error
}

func newBuilder() *builder {
	return &builder{
		override: make(map[kind.Kind]codes.Code),
		prefixes: make(map[kind.Kind][]prefixRule),
	}
}

func (b *builder) checkKind(k kind.Kind) bool {
	if err := kind.Validate(k); err != nil {
		b.errs = append(b.errs, fmt.Errorf("mapper: kind %q: %w", k, err))
		return false
	}
	return true
}
