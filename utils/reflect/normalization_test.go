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
	"testing"
)

type N1 struct{}

func TestNormalize_PointerChains(t *testing.T) {
	want := reflect.TypeOf(N1{})

	cases := []struct {
		name string
		in   reflect.Type
	}{
		{"plain", reflect.TypeOf(N1{})},
		{"ptr", reflect.TypeOf(&N1{})},
		{"ptr-ptr", reflect.TypeOf((**N1)(nil))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in, 8)
			if err != nil {
				t.Fatalf("Normalize(%v): unexpected error: %v", tc.in, err)
			}
			if got != want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, want)
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := Normalize(nil, 8); err != ErrReflectNilType {
		t.Fatalf("nil type: want ErrReflectNilType, got %v", err)
	}
	// Anonymous struct has no name.
	if _, err := Normalize(reflect.TypeOf(struct{ X int }{}), 8); err != ErrReflectTypeNotNamed {
		t.Fatalf("anonymous struct: want ErrReflectTypeNotNamed, got %v", err)
	}
	// Slice is not unwrapped: a slice target is not a named entity.
	if _, err := Normalize(reflect.TypeOf([]N1{}), 8); err != ErrReflectTypeNotNamed {
		t.Fatalf("slice: want ErrReflectTypeNotNamed, got %v", err)
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	// **N1 with MaxUnwrap=1 stays *N1 (unnamed pointer) -> error.
	in := reflect.TypeOf((**N1)(nil))
	if _, err := Normalize(in, 1); err != ErrReflectTypeNotNamed {
		t.Fatalf("MaxUnwrap=1: want ErrReflectTypeNotNamed, got %v", err)
	}
	// Non-positive depth falls back to the default.
	if got, err := Normalize(in, 0); err != nil || got != reflect.TypeOf(N1{}) {
		t.Fatalf("MaxUnwrap=0: got (%v, %v), want (reflect.N1, nil)", got, err)
	}
}

type fieldHost struct {
	Name   string
	Age    int
	Score  float64
	hidden int
}

func TestSetField(t *testing.T) {
	h := &fieldHost{Name: "a", Age: 1}

	if err := SetField(h, "Name", "b"); err != nil {
		t.Fatalf("SetField(Name): %v", err)
	}
	if h.Name != "b" {
		t.Fatalf("Name = %q, want %q", h.Name, "b")
	}

	// Scalar conversion: int into float64 field.
	if err := SetField(h, "Score", 7); err != nil {
		t.Fatalf("SetField(Score, int): %v", err)
	}
	if h.Score != 7 {
		t.Fatalf("Score = %v, want 7", h.Score)
	}

	// nil resets to the zero value.
	if err := SetField(h, "Age", nil); err != nil {
		t.Fatalf("SetField(Age, nil): %v", err)
	}
	if h.Age != 0 {
		t.Fatalf("Age = %d, want 0", h.Age)
	}
}

func TestSetField_Errors(t *testing.T) {
	h := &fieldHost{}

	if err := SetField(h, "Missing", 1); !errors.Is(err, ErrNoSuchField) {
		t.Fatalf("missing field: want ErrNoSuchField, got %v", err)
	}
	if err := SetField(h, "hidden", 1); !errors.Is(err, ErrFieldNotSettable) {
		t.Fatalf("unexported field: want ErrFieldNotSettable, got %v", err)
	}
	if err := SetField(h, "Name", 42); !errors.Is(err, ErrFieldTypeMismatch) {
		t.Fatalf("type mismatch: want ErrFieldTypeMismatch, got %v", err)
	}
	if err := SetField((*fieldHost)(nil), "Name", "x"); !errors.Is(err, ErrFieldNotSettable) {
		t.Fatalf("nil target: want ErrFieldNotSettable, got %v", err)
	}
}

func TestZeroField(t *testing.T) {
	h := &fieldHost{Name: "a", Age: 3}
	if err := ZeroField(h, "Age"); err != nil {
		t.Fatalf("ZeroField(Age): %v", err)
	}
	if h.Age != 0 || h.Name != "a" {
		t.Fatalf("after ZeroField: got %+v", *h)
	}
	if err := ZeroField(h, "nope"); !errors.Is(err, ErrNoSuchField) {
		t.Fatalf("missing field: want ErrNoSuchField, got %v", err)
	}
}

func TestHashable(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want bool
	}{
		{"int", 1, true},
		{"string", "x", true},
		{"comparable struct", N1{}, true},
		{"map", map[string]int{}, false},
		{"slice", []int{}, false},
		{"func", func() {}, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Hashable(tc.v); got != tc.want {
				t.Fatalf("Hashable(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}
