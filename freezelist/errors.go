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

package freezelist

import (
	"errors"
	"fmt"
)

var (
	// ErrFrozen is the sentinel wrapped by every MutationError; match
	// with errors.Is.
	ErrFrozen = errors.New("lfx(freezelist): mutation after hash was taken")
	// ErrUnhashable is the sentinel wrapped by every UnhashableError.
	ErrUnhashable = errors.New("lfx(freezelist): unhashable element")
	// ErrNotFound is returned by Remove when no element matches.
	ErrNotFound = errors.New("lfx(freezelist): element not found")
)

// MutationError rejects a mutation attempted after the list's hash has
// been taken. A state concern, enforced regardless of diagnostics mode;
// the capture site is present only when diagnostics mode was on at
// freeze time.
type MutationError struct {
	// Site is the freeze call site, "" outside diagnostics mode.
	Site string
}

// Error renders the rejection, appending the freeze site when captured.
func (e *MutationError) Error() string {
	msg := "lfx(freezelist): cannot modify list after its hash has been taken"
	if e.Site != "" {
		msg += "\nhash was taken at:\n" + e.Site
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrFrozen) work.
func (e *MutationError) Unwrap() error {
	return ErrFrozen
}

// UnhashableError rejects the insertion of an element that cannot
// contribute a stable hash. A pre-freeze concern, raised only in
// diagnostics mode and always before any mutation happens.
type UnhashableError struct {
	// Elem is the offending element.
	Elem any
}

// Error names the offending element.
func (e *UnhashableError) Error() string {
	return fmt.Sprintf("lfx(freezelist): attempted adding an unhashable element %v (%T) to list", e.Elem, e.Elem)
}

// Unwrap makes errors.Is(err, ErrUnhashable) work.
func (e *UnhashableError) Unwrap() error {
	return ErrUnhashable
}
