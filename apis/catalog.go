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

// Catalog caches per-type operation Plans. Probing a type for the
// operation catalogue happens exactly once; repeated registrations of
// the same type reuse the cached Plan. Keep it minimal so
// implementations can be lock-free or sync.Map-backed.
type Catalog interface {
	// Plan returns the operation plan for t, probing and caching it on
	// first use. t is normalized to its nearest named type first.
	Plan(t reflect.Type) (Plan, error)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of planned types.
	Count() int
	// Reset clears all cached plans.
	Reset()
}

// Entry is a single (type, plan) association in a Catalog snapshot.
type Entry struct {
	// Type is the normalized target type.
	Type reflect.Type
	// Plan is the probed operation plan.
	Plan Plan
}
