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

package catalog

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/config"
	uref "dirpx.dev/lfx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lfx(catalog): nil reflect.Type provided")
	// ErrNotStruct is returned when the target (after pointer
	// unwrapping) is not a named struct type. Only named structs can
	// carry guarded attribute mutation.
	ErrNotStruct = errors.New("lfx(catalog): target is not a named struct type")
)

// New constructs a Catalog that probes types according to cfg and
// resolves plan names via res. A nil res yields plans with empty names.
func New(cfg apis.Config, res apis.Resolver) apis.Catalog {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &catalog{cfg: cfg, res: res}
}

// catalog is a simple Catalog implementation backed by sync.Map.
// Probing the operation catalogue for a type happens once; wrapped
// instances share the cached plan.
type catalog struct {
	// cfg is the configuration used for normalization and naming.
	cfg apis.Config
	// res resolves plan entity names.
	res apis.Resolver
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps normalized reflect.Type to apis.Plan.
	m sync.Map // map[reflect.Type]apis.Plan
	// count tracks the number of planned types.
	count int
}

// capProbe associates an optional Op with the capability interface a
// target type must implement to support it. The probe set is the fixed,
// closed operation catalogue; attribute ops are absent because they are
// always supported on a struct target.
type capProbe struct {
	op    apis.Op
	iface reflect.Type
}

var capProbes = []capProbe{
	{apis.OpSetItem, reflect.TypeOf((*apis.ItemSetter)(nil)).Elem()},
	{apis.OpDeleteItem, reflect.TypeOf((*apis.ItemDeleter)(nil)).Elem()},
	{apis.OpAdd, reflect.TypeOf((*apis.InPlaceAdder)(nil)).Elem()},
	{apis.OpSub, reflect.TypeOf((*apis.InPlaceSubtractor)(nil)).Elem()},
	{apis.OpMul, reflect.TypeOf((*apis.InPlaceMultiplier)(nil)).Elem()},
	{apis.OpDiv, reflect.TypeOf((*apis.InPlaceDivider)(nil)).Elem()},
	{apis.OpFloorDiv, reflect.TypeOf((*apis.InPlaceFloorDivider)(nil)).Elem()},
	{apis.OpMod, reflect.TypeOf((*apis.InPlaceModder)(nil)).Elem()},
	{apis.OpPow, reflect.TypeOf((*apis.InPlacePower)(nil)).Elem()},
	{apis.OpLshift, reflect.TypeOf((*apis.InPlaceLeftShifter)(nil)).Elem()},
	{apis.OpRshift, reflect.TypeOf((*apis.InPlaceRightShifter)(nil)).Elem()},
	{apis.OpAnd, reflect.TypeOf((*apis.InPlaceAnder)(nil)).Elem()},
	{apis.OpXor, reflect.TypeOf((*apis.InPlaceXorer)(nil)).Elem()},
	{apis.OpOr, reflect.TypeOf((*apis.InPlaceOrer)(nil)).Elem()},
	{apis.OpMatMul, reflect.TypeOf((*apis.InPlaceMatMultiplier)(nil)).Elem()},
}

var (
	fieldSetterType  = reflect.TypeOf((*apis.FieldSetter)(nil)).Elem()
	fieldDeleterType = reflect.TypeOf((*apis.FieldDeleter)(nil)).Elem()
)

// Plan returns the operation plan for t, probing and caching it on
// first use. t is normalized to its nearest named struct type; both the
// struct type and a pointer to it resolve to the same plan.
func (c *catalog) Plan(t reflect.Type) (apis.Plan, error) {
	if t == nil {
		return apis.Plan{}, ErrNilType
	}

	// Normalize to the nearest named type according to c.cfg.
	base, err := uref.Normalize(t, c.cfg.MaxUnwrap)
	if err != nil {
		return apis.Plan{}, err
	}
	if base.Kind() != reflect.Struct {
		return apis.Plan{}, ErrNotStruct
	}

	// Fast read path.
	if v, ok := c.m.Load(base); ok {
		return v.(apis.Plan), nil
	}

	plan := c.probe(base)

	// Write path: guard with a mutex to keep the counter consistent.
	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := c.m.Load(base); ok {
		return v.(apis.Plan), nil
	}
	c.m.Store(base, plan)
	c.count++
	return plan, nil
}

// probe inspects base (and *base, where methods with pointer receivers
// live) against the capability catalogue.
func (c *catalog) probe(base reflect.Type) apis.Plan {
	ptr := reflect.PointerTo(base)

	var caps apis.CapSet
	for _, p := range capProbes {
		if ptr.Implements(p.iface) {
			caps = caps.With(p.op)
		}
	}

	name := ""
	if c.res != nil {
		name = c.res.ResolveType(base, c.cfg)
	}

	return apis.Plan{
		Type:            base,
		Name:            name,
		Caps:            caps,
		OverridesSet:    ptr.Implements(fieldSetterType),
		OverridesDelete: ptr.Implements(fieldDeleterType),
	}
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (c *catalog) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, c.Count())
	c.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			Plan: value.(apis.Plan),
		})
		return true
	})
	return entries
}

// Count returns the number of planned types.
func (c *catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset clears all cached plans.
func (c *catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = sync.Map{}
	c.count = 0
}
