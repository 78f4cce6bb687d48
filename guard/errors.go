/*
   Copyright 2025 The DIRPX Authors.

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

package guard

import (
	"errors"
	"fmt"

	"dirpx.dev/lfx/apis"
)

var (
	// ErrFrozen is the sentinel wrapped by every FreezeError; match
	// with errors.Is.
	ErrFrozen = errors.New("lfx(guard): mutation after hash was taken")
	// ErrUnsupported is the sentinel wrapped by every UnsupportedOpError.
	ErrUnsupported = errors.New("lfx(guard): operation not supported by type")
)

// FreezeError is the structured rejection raised for any mutation
// attempted after the entity's hash has been taken. It is an expected,
// recoverable condition: callers catch it as a control-flow signal, fix
// nothing, and move on.
type FreezeError struct {
	// Entity is the display name of the frozen entity's type.
	Entity string
	// Op is the rejected operation.
	Op apis.Op
	// Target is the attribute or item name for named operations, ""
	// for in-place operators.
	Target string
	// Site is the freeze call site, non-empty only in diagnostics mode.
	Site string
}

// Error renders the rejection, appending the freeze site when captured.
func (e *FreezeError) Error() string {
	msg := fmt.Sprintf("lfx(guard): cannot %s %s after its hash has been taken",
		e.Op.Describe(e.Target), e.Entity)
	if e.Site != "" {
		msg += "\nhash was taken at:\n" + e.Site
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrFrozen) work.
func (e *FreezeError) Unwrap() error {
	return ErrFrozen
}

// UnsupportedOpError reports an operation invoked on a type that never
// defined it. It is distinct from FreezeError: a type without item
// assignment keeps rejecting item assignment with this error before the
// freeze, and with FreezeError after it.
type UnsupportedOpError struct {
	// Entity is the display name of the entity's type.
	Entity string
	// Op is the unsupported operation.
	Op apis.Op
}

// Error renders the unsupported-operation message.
func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("lfx(guard): %s does not support %s", e.Entity, opNoun(e.Op))
}

// Unwrap makes errors.Is(err, ErrUnsupported) work.
func (e *UnsupportedOpError) Unwrap() error {
	return ErrUnsupported
}

// opNoun names an operation kind for unsupported-operation messages.
func opNoun(op apis.Op) string {
	switch op {
	case apis.OpSetField:
		return "attribute assignment"
	case apis.OpDeleteField:
		return "attribute deletion"
	case apis.OpSetItem:
		return "item assignment"
	case apis.OpDeleteItem:
		return "item deletion"
	default:
		if op.InPlace() {
			// "modify with in-place addition" -> "in-place addition"
			const prefix = "modify with "
			d := op.Describe("")
			if len(d) > len(prefix) {
				return d[len(prefix):]
			}
		}
		return op.String()
	}
}
