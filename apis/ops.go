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

import "fmt"

// Op enumerates the fixed catalogue of mutating operations the freeze
// protocol can guard. The catalogue is closed: a target type opts into
// an optional operation by implementing the corresponding capability
// interface (ItemSetter, InPlaceAdder, ...), and the catalog probes for
// those interfaces exactly once per type.
//
// OpSetField and OpDeleteField are always available on a registered
// struct type; every other Op exists on a wrapped entity only if the
// underlying type implements its capability interface.
type Op int

const (
	// OpSetField assigns a named attribute (struct field or override).
	OpSetField Op = iota
	// OpDeleteField clears a named attribute back to its zero value.
	OpDeleteField
	// OpSetItem assigns an indexed/keyed item via ItemSetter.
	OpSetItem
	// OpDeleteItem removes an indexed/keyed item via ItemDeleter.
	OpDeleteItem
	// OpAdd through OpMatMul are the in-place compound-assignment
	// operators. They target the whole entity, carry no attribute name,
	// and are therefore never exempted by a named protection policy.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLshift
	OpRshift
	OpAnd
	OpXor
	OpOr
	OpMatMul

	opCount = int(OpMatMul) + 1
)

// opInfo is the registration-time Operation Descriptor: a stable
// identifier plus the action phrasing used to build rejection errors.
type opInfo struct {
	name   string // stable identifier, e.g. "set_item"
	action string // e.g. "modify with in-place addition"
	named  bool   // true when the op targets a named attribute/item
}

var opTable = [opCount]opInfo{
	OpSetField:    {name: "set_field", named: true},
	OpDeleteField: {name: "delete_field", named: true},
	OpSetItem:     {name: "set_item", named: true},
	OpDeleteItem:  {name: "delete_item", named: true},
	OpAdd:         {name: "iadd", action: "modify with in-place addition"},
	OpSub:         {name: "isub", action: "modify with in-place subtraction"},
	OpMul:         {name: "imul", action: "modify with in-place multiplication"},
	OpDiv:         {name: "idiv", action: "modify with in-place division"},
	OpFloorDiv:    {name: "ifloordiv", action: "modify with in-place floor division"},
	OpMod:         {name: "imod", action: "modify with in-place modulo"},
	OpPow:         {name: "ipow", action: "modify with in-place power"},
	OpLshift:      {name: "ilshift", action: "modify with in-place left shift"},
	OpRshift:      {name: "irshift", action: "modify with in-place right shift"},
	OpAnd:         {name: "iand", action: "modify with in-place bitwise AND"},
	OpXor:         {name: "ixor", action: "modify with in-place bitwise XOR"},
	OpOr:          {name: "ior", action: "modify with in-place bitwise OR"},
	OpMatMul:      {name: "imatmul", action: "modify with in-place matrix multiplication"},
}

// Valid reports whether o is within the operation catalogue.
func (o Op) Valid() bool {
	return o >= 0 && int(o) < opCount
}

// Named reports whether o targets a named attribute or item. Only named
// operations are subject to selective (ProtectNamed) policies.
func (o Op) Named() bool {
	if !o.Valid() {
		return false
	}
	return opTable[o].named
}

// InPlace reports whether o is one of the in-place compound operators.
func (o Op) InPlace() bool {
	return o >= OpAdd && o <= OpMatMul
}

// String returns the stable identifier of the operation.
func (o Op) String() string {
	if !o.Valid() {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opTable[o].name
}

// Describe renders the human-readable action description used in
// rejection errors, e.g. `modify attribute 'age' of` or `modify with
// in-place addition`. For named operations target is the attribute or
// item name; for in-place operators it is ignored.
func (o Op) Describe(target string) string {
	switch o {
	case OpSetField:
		return fmt.Sprintf("modify attribute %q of", target)
	case OpDeleteField:
		return fmt.Sprintf("delete attribute %q from", target)
	case OpSetItem:
		return fmt.Sprintf("modify item %q of", target)
	case OpDeleteItem:
		return fmt.Sprintf("delete item %q from", target)
	default:
		if o.Valid() {
			return opTable[o].action
		}
		return "modify"
	}
}

// Ops returns the full operation catalogue in declaration order.
func Ops() []Op {
	out := make([]Op, opCount)
	for i := range out {
		out[i] = Op(i)
	}
	return out
}

// Capability interfaces. A target type opts into an optional mutating
// operation by implementing the matching interface; the catalog probes
// for them once per type and the guarded wrapper delegates to them when
// the mutation is allowed.
//
// FieldSetter and FieldDeleter are overrides: attribute mutation always
// exists on a registered struct (by direct field access), but a type
// implementing these takes control of the actual write.
type (
	// FieldSetter overrides attribute assignment.
	FieldSetter interface {
		SetField(name string, value any) error
	}
	// FieldDeleter overrides attribute deletion (reset to zero value).
	FieldDeleter interface {
		DeleteField(name string) error
	}
	// ItemSetter enables indexed/keyed item assignment.
	ItemSetter interface {
		SetItem(key, value any) error
	}
	// ItemDeleter enables indexed/keyed item deletion.
	ItemDeleter interface {
		DeleteItem(key any) error
	}

	// InPlaceAdder enables the in-place addition operator.
	InPlaceAdder interface {
		AddInPlace(other any) error
	}
	// InPlaceSubtractor enables the in-place subtraction operator.
	InPlaceSubtractor interface {
		SubInPlace(other any) error
	}
	// InPlaceMultiplier enables the in-place multiplication operator.
	InPlaceMultiplier interface {
		MulInPlace(other any) error
	}
	// InPlaceDivider enables the in-place (true) division operator.
	InPlaceDivider interface {
		DivInPlace(other any) error
	}
	// InPlaceFloorDivider enables the in-place floor division operator.
	InPlaceFloorDivider interface {
		FloorDivInPlace(other any) error
	}
	// InPlaceModder enables the in-place modulo operator.
	InPlaceModder interface {
		ModInPlace(other any) error
	}
	// InPlacePower enables the in-place power operator.
	InPlacePower interface {
		PowInPlace(other any) error
	}
	// InPlaceLeftShifter enables the in-place left shift operator.
	InPlaceLeftShifter interface {
		LshiftInPlace(other any) error
	}
	// InPlaceRightShifter enables the in-place right shift operator.
	InPlaceRightShifter interface {
		RshiftInPlace(other any) error
	}
	// InPlaceAnder enables the in-place bitwise AND operator.
	InPlaceAnder interface {
		AndInPlace(other any) error
	}
	// InPlaceXorer enables the in-place bitwise XOR operator.
	InPlaceXorer interface {
		XorInPlace(other any) error
	}
	// InPlaceOrer enables the in-place bitwise OR operator.
	InPlaceOrer interface {
		OrInPlace(other any) error
	}
	// InPlaceMatMultiplier enables the in-place matrix multiplication operator.
	InPlaceMatMultiplier interface {
		MatMulInPlace(other any) error
	}
)
