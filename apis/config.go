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

// Config carries read-only knobs that influence type probing, entity
// naming and freeze diagnostics. It is passed by value and should be
// treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping depth when normalizing a
	// target type to its nearest named type. Acts as a safety guard
	// against pathological nesting.
	MaxUnwrap int

	// CaptureDepth limits the number of stack frames recorded in a
	// freeze capture site when diagnostics mode is on.
	CaptureDepth int

	// QualifiedNames controls whether reflect-derived entity names in
	// rejection errors are package-qualified ("domain.Person") or bare
	// ("Person").
	QualifiedNames bool
}
