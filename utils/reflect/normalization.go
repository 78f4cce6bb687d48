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
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// defaultMaxUnwrap mirrors config.DefaultMaxUnwrap without importing it
// (config depends on apis only; utils stay leaf-level).
const defaultMaxUnwrap = 8

// Normalize unwraps pointer chains up to maxUnwrap levels and returns
// the nearest named inner type, or an error if none is found. Unlike
// general container normalization, freeze targets are concrete
// entities, so only pointers are unwrapped; a slice or map target is
// simply not a named entity type.
//
// If maxUnwrap <= 0, a default of 8 is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = defaultMaxUnwrap
	}
	for i := 0; t != nil && i < maxUnwrap; i++ {
		if t.Kind() != reflect.Ptr {
			break
		}
		t = t.Elem()
	}
	if t != nil && t.Name() != "" && t.Kind() != reflect.Ptr {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}
