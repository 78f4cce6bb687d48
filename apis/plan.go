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

package apis

import "reflect"

// Plan is the per-type result of probing the operation catalogue: which
// mutating operations the type supports, which attribute operations it
// overrides, and the entity name used in rejection errors.
//
// A Plan is built once per registered type (not per instance) and is
// immutable afterwards; wrapped instances share it. The capability set
// is encoded as a bitmask so the per-mutation cost is a single mask
// test.
type Plan struct {
	// Type is the normalized (named struct) target type.
	Type reflect.Type

	// Name is the resolved entity name for error messages.
	Name string

	// Caps is the probed capability bitmask, indexed by Op.
	Caps CapSet

	// OverridesSet reports that the type implements FieldSetter and
	// attribute assignment must delegate to it instead of direct field
	// access.
	OverridesSet bool

	// OverridesDelete reports the FieldDeleter override.
	OverridesDelete bool
}

// Supports reports whether the planned type exposes op. Attribute
// operations are always supported on a registered struct type.
func (p Plan) Supports(op Op) bool {
	if op == OpSetField || op == OpDeleteField {
		return true
	}
	return p.Caps.Has(op)
}

// CapSet is a bitmask over the operation catalogue.
type CapSet uint32

// Has reports whether op is in the set.
func (s CapSet) Has(op Op) bool {
	if !op.Valid() {
		return false
	}
	return s&(1<<uint(op)) != 0
}

// With returns a copy of the set with op added.
func (s CapSet) With(op Op) CapSet {
	if !op.Valid() {
		return s
	}
	return s | 1<<uint(op)
}

// Count returns the number of operations in the set.
func (s CapSet) Count() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}
