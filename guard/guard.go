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

// Package guard holds the shared, stateless freeze-enforcement logic:
// the one-way Latch, the Check decision, and the error taxonomy. It is
// consulted by every guarded operation but is never itself installed on
// a type.
package guard

import (
	"dirpx.dev/lfx/apis"
)

// Check decides whether a mutating operation is currently allowed on an
// entity. It returns nil when the mutation may proceed and a
// *FreezeError when it must be rejected.
//
// Rules:
//   - Unfrozen entities allow everything.
//   - Under a ProtectNamed policy, a named operation whose target is
//     not listed stays allowed forever.
//   - In-place operators carry no target name, so a named policy never
//     exempts them; once frozen they are always rejected.
func Check(l *Latch, opts apis.Options, op apis.Op, target, entity string) error {
	if !l.Frozen() {
		return nil
	}
	if op.Named() && !opts.Policy.Protects(target) {
		return nil
	}
	return &FreezeError{
		Entity: entity,
		Op:     op,
		Target: target,
		Site:   l.Site(),
	}
}
