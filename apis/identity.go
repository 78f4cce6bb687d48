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

// Identity is the user-supplied identity-hash contract. A type must
// implement Identity to participate in the lazy-freeze protocol: the
// first call to the wrapped hash is what flips the entity from mutable
// to frozen.
//
// HashIdentity must be consistent with the type's notion of equality,
// and must be free of side effects: lfx observes *when* the hash is
// computed and reacts, it never interprets or re-derives the value.
// Implementations should be deterministic for a fixed state and cheap
// to call repeatedly (the value is typically recomputed on every
// hash-based collection operation).
type Identity interface {
	// HashIdentity returns a stable hash of the entity's current state.
	HashIdentity() uint64
}
