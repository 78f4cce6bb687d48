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

package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoSuchField is returned when the named field does not exist.
	ErrNoSuchField = errors.New("reflect: no such field")
	// ErrFieldNotSettable is returned for unexported or otherwise
	// unaddressable fields.
	ErrFieldNotSettable = errors.New("reflect: field is not settable")
	// ErrFieldTypeMismatch is returned when the value is not assignable
	// to the field.
	ErrFieldTypeMismatch = errors.New("reflect: value not assignable to field")
)

// SetField assigns value to the exported struct field name of the
// struct pointed to by target. target must be a non-nil pointer to a
// struct. A nil value sets the field to its zero value.
func SetField(target any, name string, value any) error {
	fv, err := fieldOf(target, name)
	if err != nil {
		return err
	}
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	vv := reflect.ValueOf(value)
	if !vv.Type().AssignableTo(fv.Type()) {
		if vv.Type().ConvertibleTo(fv.Type()) && isScalar(fv.Kind()) && isScalar(vv.Kind()) {
			fv.Set(vv.Convert(fv.Type()))
			return nil
		}
		return fmt.Errorf("%w: %s to %s", ErrFieldTypeMismatch, vv.Type(), fv.Type())
	}
	fv.Set(vv)
	return nil
}

// ZeroField resets the exported struct field name of the struct pointed
// to by target back to its zero value.
func ZeroField(target any, name string) error {
	fv, err := fieldOf(target, name)
	if err != nil {
		return err
	}
	fv.Set(reflect.Zero(fv.Type()))
	return nil
}

// fieldOf locates the named field on *struct target and verifies it is
// settable.
func fieldOf(target any, name string) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil struct pointer", ErrFieldNotSettable)
	}
	sv := rv.Elem()
	if sv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must point to a struct", ErrFieldNotSettable)
	}
	fv := sv.FieldByName(name)
	if !fv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", ErrNoSuchField, name, sv.Type())
	}
	if !fv.CanSet() {
		return reflect.Value{}, fmt.Errorf("%w: %q on %s", ErrFieldNotSettable, name, sv.Type())
	}
	return fv, nil
}

// isScalar reports kinds where a lossless-ish numeric/string conversion
// is acceptable on assignment (e.g., untyped int literal into int64).
func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Hashable reports whether v can contribute a stable hash: either it
// implements a HashIdentity-style contract (checked by the caller) or
// its dynamic type is comparable, which is Go's own precondition for
// use as a map key. nil is not hashable.
func Hashable(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Comparable()
}
