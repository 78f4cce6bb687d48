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

package strategy

import (
	"reflect"
	"testing"

	"dirpx.dev/lfx/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		MaxUnwrap:      8,
		CaptureDepth:   32,
		QualifiedNames: true,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name     string
		val      any
		cfg      apis.Config
		expected string
	}{
		{"plain struct", A{}, cfg(), "strategy.A"},
		{"ptr", &A{}, cfg(), "strategy.A"},
		{"bare name", A{}, cfg(func(c *apis.Config) { c.QualifiedNames = false }), "A"},
		{"builtin", 42, cfg(), "int"},
		{"generic strips params", G[int]{}, cfg(), "strategy.G"},
		{"slice is unnamed", []A{}, cfg(), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, tc.cfg)
			if !ok {
				t.Fatalf("TryResolve(%v): expected handled=true", tc.val)
			}
			if got != tc.expected {
				t.Fatalf("TryResolve(%v) = %q, want %q", tc.val, got, tc.expected)
			}
		})
	}
}

func TestReflectStrategy_NilValue(t *testing.T) {
	s := NewReflectStrategy()
	if _, ok := s.TryResolve(nil, cfg()); ok {
		t.Fatalf("nil value: expected handled=false")
	}
	if _, ok := s.TryResolveType(nil, cfg()); ok {
		t.Fatalf("nil type: expected handled=false")
	}
}

func TestReflectStrategy_ByType(t *testing.T) {
	s := NewReflectStrategy()

	got, ok := s.TryResolveType(reflect.TypeOf((**A)(nil)), cfg())
	if !ok || got != "strategy.A" {
		t.Fatalf("TryResolveType(**A) = (%q,%v), want (strategy.A,true)", got, ok)
	}
}

func TestReflectStrategy_MemoizationRespectsConfig(t *testing.T) {
	s := NewReflectStrategy()

	// Same type, different knobs must not collide in the cache.
	q, _ := s.TryResolve(A{}, cfg())
	b, _ := s.TryResolve(A{}, cfg(func(c *apis.Config) { c.QualifiedNames = false }))
	if q == b {
		t.Fatalf("qualified and bare names should differ: %q vs %q", q, b)
	}
	q2, _ := s.TryResolve(A{}, cfg())
	if q2 != q {
		t.Fatalf("memoized name changed: %q vs %q", q2, q)
	}
}
