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

import (
	"sort"
	"strings"
)

// Policy decides which named attributes/items are subject to the
// freeze. It is an explicit two-variant type: ProtectAll covers every
// mutation, ProtectNamed covers only the listed names and leaves all
// other named targets mutable forever.
//
// The policy only ever applies to named operations. In-place operators
// target the whole entity and are always rejected once frozen,
// regardless of the policy (see Op.Named).
//
// The zero value is ProtectAll.
type Policy struct {
	names map[string]struct{} // nil means protect everything
}

// ProtectAll returns the policy that freezes every mutation.
func ProtectAll() Policy {
	return Policy{}
}

// ProtectNamed returns a policy that freezes only the listed attribute
// or item names. With no names it degenerates to ProtectAll, matching
// the "empty list protects everything" convention of call sites that
// pass a possibly-empty slice.
func ProtectNamed(names ...string) Policy {
	if len(names) == 0 {
		return ProtectAll()
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return Policy{names: m}
}

// All reports whether the policy protects every named target.
func (p Policy) All() bool {
	return p.names == nil
}

// Protects reports whether a mutation targeting name is subject to the
// freeze under this policy.
func (p Policy) Protects(name string) bool {
	if p.names == nil {
		return true
	}
	_, ok := p.names[name]
	return ok
}

// Names returns the protected names in sorted order, or nil for
// ProtectAll. The result is a copy.
func (p Policy) Names() []string {
	if p.names == nil {
		return nil
	}
	out := make([]string, 0, len(p.names))
	for n := range p.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// String renders the policy for diagnostics.
func (p Policy) String() string {
	if p.names == nil {
		return "protect(all)"
	}
	return "protect(" + strings.Join(p.Names(), ",") + ")"
}

// Options carries the per-registration configuration of a guarded
// type: the diagnostics flag and the protection policy. Options are
// fixed at registration time and immutable thereafter.
type Options struct {
	// Debug enables diagnostics mode: the call stack active at the
	// moment of freezing is captured and appended to rejection errors.
	Debug bool

	// Policy selects full or selective protection.
	Policy Policy
}
