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

// Package lfx implements a lazy-freeze protocol: an entity starts
// mutable and transitions, exactly once and irreversibly, to an
// immutable state the first time its identity hash is computed.
//
// The protocol exists to prevent a classic correctness bug: mutating an
// object after it has been placed in a hash-keyed collection. Once the
// hash has been published to such a collection, any mutation that would
// change the hash silently corrupts the collection's bucket placement.
// lfx makes that mutation loud instead: before the first hash all
// mutations succeed normally; after it, any mutation that would change
// observable state is rejected with a structured error.
//
// # Design
//
// A target type opts into the protocol by implementing apis.Identity:
//
//	type Person struct {
//	    Name string
//	    Age  int
//	}
//
//	func (p *Person) HashIdentity() uint64 {
//	    h := fnv.New64a()
//	    io.WriteString(h, p.Name)
//	    binary.Write(h, binary.BigEndian, int64(p.Age))
//	    return h.Sum64()
//	}
//
// Registration validates the contract and produces a reusable
// configurator; wrapping an instance produces the guarded view:
//
//	pt, err := lfx.Register[Person](config.WithDebug())
//	g, err := pt.Wrap(&Person{Name: "Alice", Age: 30})
//
//	_ = g.SetField("Age", 31) // allowed: not yet hashed
//	_ = g.Hash()              // freezes the entity
//	err = g.SetField("Age", 32)
//	// err: lfx(guard): cannot modify attribute "Age" of lfx.Person
//	//      after its hash has been taken
//
// The moving parts, bottom up:
//
//   - guard: the one-way freeze Latch, the shared Check decision, and
//     the error taxonomy (FreezeError vs UnsupportedOpError). The latch
//     is an atomic boolean, so the hot path of every guarded mutation
//     costs one atomic load.
//
//   - catalog: probes a type once against the fixed, closed catalogue
//     of mutating operations and caches the resulting apis.Plan per
//     type. The catalogue is attribute set/delete (always present on a
//     struct), item set/delete (apis.ItemSetter/ItemDeleter), and the
//     thirteen in-place compound operators (apis.InPlaceAdder, ...).
//     Wrapped instances share the plan; probing never repeats.
//
//   - resolver/strategy: produce the entity display name used in
//     rejection errors. The chain tries the apis.Namer fast path, then
//     a memoized reflect-based "pkg.Type" fallback.
//
//   - guarded: the interception layer. Guarded[T] holds the original
//     instance plus the latch and forwards allowed operations with
//     identical arguments and results. The original type's methods are
//     never rewritten; augmentation is a wrapper, not a method-table
//     patch.
//
//   - freezelist: a self-contained hashable sequence container with the
//     same one-shot freeze semantics built in natively, because a
//     sequence's mutation surface is fixed and known in advance.
//
// # Protection policy
//
// By default the whole entity freezes. A registration may instead name
// the protected attributes:
//
//	pt, _ := lfx.Register[Person](config.WithProtected("Name", "Age"))
//
// After the freeze, attributes outside the list stay mutable forever;
// listed ones are rejected. The policy only ever applies to named
// operations: an in-place operator has no attribute name to check, so
// once frozen it is always rejected regardless of the list.
//
// # Diagnostics mode
//
// With config.WithDebug() the call stack active at the moment of
// freezing is captured on the unfrozen-to-frozen transition and
// appended to every later rejection error, answering the question
// "who took the hash?". Re-hashing never overwrites the capture site.
//
// # Global state
//
// The package holds an atomic pointer to an immutable snapshot (config,
// catalog, resolver, builder). Readers load the pointer and never
// mutate it; writers derive a new snapshot under a build mutex and swap
// it in. Registration and name lookups are therefore lock-free on the
// hot path, and concurrent callers always see a consistent snapshot.
// SetCatalog/SetResolver pin their layer against automatic rebuilds
// until the matching Unpin call; SetAll is the hard-reset API used by
// tests.
//
// # Concurrency model
//
// The freeze transition is an atomic latch: once a goroutine observes
// Frozen() == true, no mutation observably succeeds afterwards, and the
// capture site is published before the flag. The protocol still assumes
// one logical writer per entity instance: it is a correctness latch,
// not a coordination primitive, and guarded operations do not serialize
// concurrent mutations of the underlying value.
//
// # Scope
//
// lfx is intentionally small. It never computes a hash itself (hashing
// is always delegated to the entity's own HashIdentity) and it never
// copies or snapshots entity state; it only gates access. Errors are
// returned synchronously to the caller; lfx never logs, swallows, or
// retries.
package lfx
