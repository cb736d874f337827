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

package secret

import (
	"crypto/subtle"
	"encoding"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Sensitivity says whether a Value is masked on display.
type Sensitivity uint8

const (
	// Secured values display as a mask. It is the zero value.
	Secured Sensitivity = iota
	// Unsecured values display as-is.
	Unsecured
)

func (s Sensitivity) String() string {
	switch s {
	case Secured:
		return "secured"
	case Unsecured:
		return "unsecured"
	}
	return "sensitivity(" + strconv.Itoa(int(s)) + ")"
}

// Mask is the character repeated once per rune of a secured value.
const Mask = "*"

// Value is an immutable string with a display policy and a creation time.
// The zero Value is a secured empty string.
type Value struct {
	raw         string
	createdAt   time.Time
	sensitivity Sensitivity
}

var (
	_ fmt.Stringer               = Value{}
	_ fmt.GoStringer             = Value{}
	_ fmt.Formatter              = Value{}
	_ json.Marshaler             = Value{}
	_ encoding.TextMarshaler     = Value{}
	_ encoding.TextUnmarshaler   = (*Value)(nil)
	_ slog.LogValuer             = Value{}
	_ zerolog.LogObjectMarshaler = Value{}
)

// New wraps raw with sensitivity s, stamped with the current time.
func New(raw string, s Sensitivity) Value {
	return NewAt(raw, s, time.Now())
}

// NewAt is New with an explicit creation time.
func NewAt(raw string, s Sensitivity, at time.Time) Value {
	return Value{raw: raw, createdAt: at, sensitivity: s}
}

// IsSecured reports whether v is masked on display. Any sensitivity other
// than Unsecured counts as secured.
func (v Value) IsSecured() bool { return v.sensitivity != Unsecured }

// Sensitivity returns the display policy of v.
func (v Value) Sensitivity() Sensitivity { return v.sensitivity }

// CreatedAt returns the time v was constructed.
func (v Value) CreatedAt() time.Time { return v.createdAt }

// Display returns the text shown for v: a mask of the same length for
// secured values, the raw value otherwise.
func (v Value) Display() string {
	if !v.IsSecured() {
		return v.raw
	}
	return strings.Repeat(Mask, utf8.RuneCountInString(v.raw))
}

// Reveal returns the raw value. It is the only accessor that does.
func (v Value) Reveal() string { return v.raw }

// Len returns the number of characters in the raw value.
func (v Value) Len() int { return utf8.RuneCountInString(v.raw) }

// IsEmpty reports whether the raw value is empty.
func (v Value) IsEmpty() bool { return v.raw == "" }

// Equal compares the raw values in constant time. Sensitivity and creation
// time are ignored.
func (v Value) Equal(o Value) bool {
	return subtle.ConstantTimeCompare([]byte(v.raw), []byte(o.raw)) == 1
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Display() }

// GoString implements fmt.GoStringer.
func (v Value) GoString() string { return "secret.Value(" + strconv.Quote(v.Display()) + ")" }

// Format routes every fmt verb through Display. %q quotes it, %#v uses
// GoString and width and flags are honoured for the rest.
func (v Value) Format(f fmt.State, verb rune) {
	switch {
	case verb == 'v' && f.Flag('#'):
		_, _ = f.Write([]byte(v.GoString()))
	case verb == 'q':
		_, _ = f.Write([]byte(strconv.Quote(v.Display())))
	default:
		_, _ = fmt.Fprintf(f, fmt.FormatString(plain{f}, 's'), v.Display())
	}
}

// plain hides the '#' flag so that FormatString does not turn %#s into
// a Go-syntax request.
type plain struct{ fmt.State }

func (p plain) Flag(c int) bool { return c != '#' && p.State.Flag(c) }

// MarshalJSON encodes the display text as a JSON string.
func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.Display()) }

// MarshalText encodes the display text.
func (v Value) MarshalText() ([]byte, error) { return []byte(v.Display()), nil }

// UnmarshalText reads a secured value, so config fields decode into a
// masked Value. Marshalling it back yields the mask, not the input.
func (v *Value) UnmarshalText(text []byte) error {
	*v = New(string(text), Secured)
	return nil
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value { return slog.StringValue(v.Display()) }

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (v Value) MarshalZerologObject(e *zerolog.Event) {
	e.Str("value", v.Display()).Bool("secured", v.IsSecured())
}
