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

package guarded

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/lfx/apis"
)

var (
	// ErrNotStruct is returned when the registered type parameter is
	// not a named struct type: attribute protection is defined over
	// struct fields, so functions, maps, pointers and anonymous types
	// are the wrong kind of argument.
	ErrNotStruct = errors.New("lfx(guarded): target must be a named struct type")
	// ErrMissingIdentity is returned when the registered type does not
	// implement apis.Identity. The freeze protocol observes the
	// identity-hash computation; a type without its own HashIdentity
	// has nothing to observe. This is a programmer error, detected at
	// registration time.
	ErrMissingIdentity = errors.New("lfx(guarded): target must implement its own HashIdentity (apis.Identity)")
	// ErrNilTarget is returned when wrapping a nil instance.
	ErrNilTarget = errors.New("lfx(guarded): nil target instance")
)

// identityType is the probe for the apis.Identity contract.
var identityType = reflect.TypeOf((*apis.Identity)(nil)).Elem()

// Type is the reusable configurator produced by Register: the probed
// operation plan for T plus the registration options. It is immutable
// and safe for concurrent use; Wrap produces independently-latched
// guarded instances.
type Type[T any] struct {
	plan apis.Plan
	opts apis.Options
	cfg  apis.Config
	res  apis.Resolver
}

// Register validates T against the freeze-protocol contract and builds
// its configurator.
//
// Preconditions (both fatal, neither retried):
//   - T must be a named struct type (ErrNotStruct).
//   - *T must implement apis.Identity (ErrMissingIdentity). A type
//     without its own identity-hash computation must not be registered;
//     relying on pointer identity would make freezing meaningless.
//
// The operation plan is fetched from cat, so probing T's capability
// interfaces happens once per type across all registrations.
func Register[T any](cfg apis.Config, cat apis.Catalog, res apis.Resolver, opts apis.Options) (*Type[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, fmt.Errorf("%w, got %s (kind %s)", ErrNotStruct, t, t.Kind())
	}
	if !reflect.PointerTo(t).Implements(identityType) {
		return nil, fmt.Errorf("%w: %s", ErrMissingIdentity, t)
	}
	if cat == nil {
		return nil, errors.New("lfx(guarded): nil catalog")
	}

	plan, err := cat.Plan(t)
	if err != nil {
		return nil, err
	}
	return &Type[T]{plan: plan, opts: opts, cfg: cfg, res: res}, nil
}

// Wrap returns a guarded view of v. The wrapper owns the freeze latch;
// the underlying value stays untouched and reachable via Unwrap.
func (t *Type[T]) Wrap(v *T) (*Guarded[T], error) {
	if v == nil {
		return nil, ErrNilTarget
	}

	// Registration guarantees the assertion succeeds.
	id := any(v).(apis.Identity)

	// Per-instance name: Namer fast path via the resolver chain, plan
	// name as fallback.
	name := t.plan.Name
	if t.res != nil {
		if n := t.res.Resolve(v, t.cfg); n != "" {
			name = n
		}
	}

	return &Guarded[T]{typ: t, inner: v, id: id, name: name}, nil
}

// Plan returns the probed operation plan for T.
func (t *Type[T]) Plan() apis.Plan {
	return t.plan
}

// Options returns the registration options.
func (t *Type[T]) Options() apis.Options {
	return t.opts
}
