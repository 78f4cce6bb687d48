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

// Namer identifies application-level entities by a stable, canonical name.
//
// Namer is the zero-reflection fast path for resolving the entity name
// that appears in freeze-rejection errors. When a value implements
// Namer, resolution uses EntityName() and stops; no reflect-based
// strategy runs for that value.
//
// EntityName is a type-level contract: it describes the kind of entity,
// not a particular instance, and must not depend on mutable instance
// state. Implementations must be safe for concurrent use, must not
// block or perform I/O, and should return a constant or precomputed
// string.
type Namer interface {
	// EntityName returns the canonical, type-level name for this entity.
	EntityName() string
}

// NamerFunc adapts a plain func() string to the Namer interface.
type NamerFunc func() string

// EntityName implements Namer for NamerFunc.
func (f NamerFunc) EntityName() string {
	return f()
}
