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

// Package guarded implements the operation-interception layer of the
// lazy-freeze protocol: a wrapper that forwards mutating operations to
// the underlying value while they are allowed and rejects them once the
// identity hash has been taken.
//
// The wrapper pattern is deliberate. The original protocol rewrote the
// target type's method table in place; here the augmented type is a
// distinct Guarded[T] holding the original instance plus the freeze
// latch, so the target type itself is never modified and unwrapped
// values keep their ordinary behavior.
package guarded

import (
	"errors"
	"fmt"

	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/guard"
	uref "dirpx.dev/lfx/utils/reflect"
)

// ErrNotInPlace is returned by Apply for operations outside the
// in-place operator range.
var ErrNotInPlace = errors.New("lfx(guarded): not an in-place operation")

// Guarded is the augmented view of a registered entity. All previously
// existing operations keep their signatures and results when allowed;
// disallowed mutations return a *guard.FreezeError and change nothing.
//
// One freeze latch per wrapped instance: wrapping the same value twice
// yields independently-freezable views.
type Guarded[T any] struct {
	typ   *Type[T]
	inner *T
	id    apis.Identity
	name  string
	latch guard.Latch
}

// Hash computes the identity hash of the underlying value and freezes
// the entity. The first call performs the freeze (and, in diagnostics
// mode, captures the call site); later calls are pure: same value, no
// further state change, and the original capture site is never
// overwritten. The returned value is exactly what the entity's own
// HashIdentity produced.
func (g *Guarded[T]) Hash() uint64 {
	v := g.id.HashIdentity()
	// Freeze strictly after the identity computation so the hash never
	// observes a frozen entity. The latch write bypasses the guard: the
	// transition itself is not a guarded mutation.
	g.latch.Freeze(g.typ.opts.Debug, g.typ.cfg.CaptureDepth, 1)
	return v
}

// SetField assigns a named attribute. Attribute assignment always
// exists on a registered struct type: it delegates to a FieldSetter
// override when the type implements one, and falls back to direct
// (exported) field access otherwise.
func (g *Guarded[T]) SetField(name string, value any) error {
	if err := g.check(apis.OpSetField, name); err != nil {
		return err
	}
	if g.typ.plan.OverridesSet {
		return any(g.inner).(apis.FieldSetter).SetField(name, value)
	}
	return uref.SetField(g.inner, name, value)
}

// DeleteField clears a named attribute back to its zero value,
// delegating to a FieldDeleter override when present.
func (g *Guarded[T]) DeleteField(name string) error {
	if err := g.check(apis.OpDeleteField, name); err != nil {
		return err
	}
	if g.typ.plan.OverridesDelete {
		return any(g.inner).(apis.FieldDeleter).DeleteField(name)
	}
	return uref.ZeroField(g.inner, name)
}

// SetItem assigns an indexed/keyed item via the type's ItemSetter.
//
// Ordering matters here: the freeze guard runs first, so a frozen
// entity rejects item assignment with a FreezeError even if the type
// never supported items; an unfrozen (or exempted) entity without
// ItemSetter gets the distinct UnsupportedOpError instead.
func (g *Guarded[T]) SetItem(key, value any) error {
	if err := g.check(apis.OpSetItem, itemName(key)); err != nil {
		return err
	}
	if !g.typ.plan.Supports(apis.OpSetItem) {
		return &guard.UnsupportedOpError{Entity: g.name, Op: apis.OpSetItem}
	}
	return any(g.inner).(apis.ItemSetter).SetItem(key, value)
}

// DeleteItem removes an indexed/keyed item via the type's ItemDeleter.
// Same guard-before-support ordering as SetItem.
func (g *Guarded[T]) DeleteItem(key any) error {
	if err := g.check(apis.OpDeleteItem, itemName(key)); err != nil {
		return err
	}
	if !g.typ.plan.Supports(apis.OpDeleteItem) {
		return &guard.UnsupportedOpError{Entity: g.name, Op: apis.OpDeleteItem}
	}
	return any(g.inner).(apis.ItemDeleter).DeleteItem(key)
}

// Apply performs one of the in-place compound-assignment operators.
// In-place operators target the whole entity: no protection policy
// exempts them, so once frozen they are always rejected.
func (g *Guarded[T]) Apply(op apis.Op, operand any) error {
	if !op.InPlace() {
		return fmt.Errorf("%w: %s", ErrNotInPlace, op)
	}
	if err := g.check(op, ""); err != nil {
		return err
	}
	if !g.typ.plan.Supports(op) {
		return &guard.UnsupportedOpError{Entity: g.name, Op: op}
	}
	return g.dispatch(op, operand)
}

// dispatch forwards op to the matching capability interface. The plan
// check in Apply guarantees the assertions succeed.
func (g *Guarded[T]) dispatch(op apis.Op, operand any) error {
	in := any(g.inner)
	switch op {
	case apis.OpAdd:
		return in.(apis.InPlaceAdder).AddInPlace(operand)
	case apis.OpSub:
		return in.(apis.InPlaceSubtractor).SubInPlace(operand)
	case apis.OpMul:
		return in.(apis.InPlaceMultiplier).MulInPlace(operand)
	case apis.OpDiv:
		return in.(apis.InPlaceDivider).DivInPlace(operand)
	case apis.OpFloorDiv:
		return in.(apis.InPlaceFloorDivider).FloorDivInPlace(operand)
	case apis.OpMod:
		return in.(apis.InPlaceModder).ModInPlace(operand)
	case apis.OpPow:
		return in.(apis.InPlacePower).PowInPlace(operand)
	case apis.OpLshift:
		return in.(apis.InPlaceLeftShifter).LshiftInPlace(operand)
	case apis.OpRshift:
		return in.(apis.InPlaceRightShifter).RshiftInPlace(operand)
	case apis.OpAnd:
		return in.(apis.InPlaceAnder).AndInPlace(operand)
	case apis.OpXor:
		return in.(apis.InPlaceXorer).XorInPlace(operand)
	case apis.OpOr:
		return in.(apis.InPlaceOrer).OrInPlace(operand)
	case apis.OpMatMul:
		return in.(apis.InPlaceMatMultiplier).MatMulInPlace(operand)
	default:
		return fmt.Errorf("%w: %s", ErrNotInPlace, op)
	}
}

// Frozen reports whether the entity's hash has been taken.
func (g *Guarded[T]) Frozen() bool {
	return g.latch.Frozen()
}

// CaptureSite returns the freeze call site, or "" when unfrozen or not
// in diagnostics mode.
func (g *Guarded[T]) CaptureSite() string {
	return g.latch.Site()
}

// EntityName returns the display name used in this entity's errors.
func (g *Guarded[T]) EntityName() string {
	return g.name
}

// Unwrap returns the underlying value. Mutations through the returned
// pointer bypass the guard entirely; it exists for read access and for
// callers that knowingly step outside the protocol.
func (g *Guarded[T]) Unwrap() *T {
	return g.inner
}

// check consults the shared mutation guard.
func (g *Guarded[T]) check(op apis.Op, target string) error {
	return guard.Check(&g.latch, g.typ.opts, op, target, g.name)
}

// itemName renders an item key for policy matching and error text.
func itemName(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
