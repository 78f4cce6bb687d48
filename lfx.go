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

package lfx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/builder"
	"dirpx.dev/lfx/config"
	"dirpx.dev/lfx/guarded"
)

// init initializes the global lfx state.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	res := b.BuildResolver(cfg, nil, nil)
	cat := b.BuildCatalog(cfg, res, nil, nil)
	st.Store(&state{cfg: cfg, cat: cat, res: res, bld: b})
}

var (
	// ErrNilCatalog is returned when a builder returns a nil catalog.
	ErrNilCatalog = errors.New("lfx: builder returned nil catalog")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("lfx: builder returned nil resolver")
)

// Register validates the struct type T against the freeze-protocol
// contract and returns its reusable configurator. Options configure
// diagnostics mode and the protection policy:
//
//	pt, err := lfx.Register[Person](config.WithDebug(), config.WithProtected("Name", "Age"))
//	g, err := pt.Wrap(&Person{...})
//
// Registration fails when T is not a named struct type or when *T does
// not implement apis.Identity. Probing T's operation catalogue happens
// once per type via the global catalog.
func Register[T any](opts ...config.RegOption) (*guarded.Type[T], error) {
	s := st.Load()
	return guarded.Register[T](s.cfg, s.cat, s.res, config.NewOptions(opts...))
}

// Wrap is the direct, no-options call shape: it registers T with
// default options (diagnostics off, full protection) and wraps v in one
// step. Equivalent to Register[T]() followed by Wrap(v).
func Wrap[T any](v *T) (*guarded.Guarded[T], error) {
	pt, err := Register[T]()
	if err != nil {
		return nil, err
	}
	return pt.Wrap(v)
}

// Entity resolves the display name of the provided value v using the
// global lfx resolver.
// This is a convenience wrapper around the global res.
func Entity(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// EntityType resolves the display name of the provided reflect.Type t
// using the global lfx resolver.
// This is a convenience wrapper around the global res.
func EntityType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// PlanFor returns the operation plan for t from the global catalog,
// probing it on first use.
// This is a convenience wrapper around the global cat.
func PlanFor(t reflect.Type) (apis.Plan, error) {
	return st.Load().cat.Plan(t)
}

// Config returns the global lfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global lfx configuration to cfg.
// It rebuilds the non-pinned resolver and catalog using the new
// configuration.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(rebuild(old, cfg, old.ext, old.bld))
}

// Catalog returns the global lfx catalog.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// SetCatalog sets the global lfx catalog to cat and pins it: further
// SetConfig calls will not rebuild the catalog until UnpinCatalog.
func SetCatalog(cat apis.Catalog) {
	if cat == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	n := old.clone()
	n.cat = cat
	n.pcat = true
	st.Store(n)
}

// Resolver returns the global lfx resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global lfx resolver to res and pins it. The
// catalog consumes the resolver for plan names, so the non-pinned
// catalog is rebuilt against res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	n := old.clone()
	n.res = res
	n.pres = true
	if !old.pcat {
		n.cat = old.bld.BuildCatalog(old.cfg, res, old.cat, old.ext)
		if n.cat == nil {
			panic(ErrNilCatalog)
		}
	}
	st.Store(n)
}

// Builder returns the global lfx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global lfx builder to b and rebuilds the
// non-pinned layers through it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(rebuild(old, old.cfg, old.ext, b))
}

// SetExt replaces the extension config and rebuilds non-pinned layers
// via the builder. lfx does not interpret ext; it is passed down to the
// builder so out-of-tree builders can carry extra policy or state.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(rebuild(old, old.cfg, ext, old.bld))
}

// ExtAs returns the global lfx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetAll explicitly sets all global lfx state components.
//
// Nil arguments leave the corresponding component unchanged, except for
// ext which is always replaced. Explicitly provided catalog/resolver
// become pinned. This is mainly used by tests to get a clean
// deterministic state between test cases.
func SetAll(cfg *apis.Config, ext any, cat apis.Catalog, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nres := res
	npres := nres != nil
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, old.res, ext)
	}
	ncat := cat
	npcat := ncat != nil
	if ncat == nil {
		ncat = nbld.BuildCatalog(ncfg, nres, old.cat, ext)
	}

	if ncat == nil {
		panic(ErrNilCatalog)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	st.Store(&state{
		cfg:  ncfg,
		ext:  ext,
		cat:  ncat,
		res:  nres,
		bld:  nbld,
		pcat: npcat,
		pres: npres,
	})
}

// IsCatalogPinned returns whether the global lfx catalog is pinned.
func IsCatalogPinned() bool {
	return st.Load().pcat
}

// PinCatalog stops automatic rebuilds of the global catalog.
func PinCatalog() {
	setPin(func(s *state) { s.pcat = true })
}

// UnpinCatalog re-enables automatic rebuilds of the global catalog.
func UnpinCatalog() {
	setPin(func(s *state) { s.pcat = false })
}

// IsResolverPinned returns whether the global lfx resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() {
	setPin(func(s *state) { s.pres = true })
}

// UnpinResolver re-enables automatic rebuilds of the global resolver.
func UnpinResolver() {
	setPin(func(s *state) { s.pres = false })
}

// setPin publishes a copy of the current state with a pin flag changed.
func setPin(mut func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()
	n := st.Load().clone()
	mut(n)
	st.Store(n)
}

// rebuild derives a new snapshot for (cfg, ext, bld), reconstructing
// the non-pinned resolver and catalog in dependency order.
func rebuild(old *state, cfg apis.Config, ext any, bld apis.Builder) *state {
	nres := old.res
	if !old.pres {
		nres = bld.BuildResolver(cfg, old.res, ext)
	}
	ncat := old.cat
	if !old.pcat {
		ncat = bld.BuildCatalog(cfg, nres, old.cat, ext)
	}

	if nres == nil {
		panic(ErrNilResolver)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	return &state{
		cfg:  cfg,
		ext:  ext,
		cat:  ncat,
		res:  nres,
		bld:  bld,
		pcat: old.pcat,
		pres: old.pres,
	}
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global lfx state.
var st atomic.Pointer[state]

// state is the global lfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global lfx configuration.
	cfg apis.Config
	// ext is the global lfx extension configuration.
	ext any
	// cat is the global lfx catalog.
	cat apis.Catalog
	// res is the global lfx resolver.
	res apis.Resolver
	// bld is the global lfx builder.
	bld apis.Builder
	// pcat indicates whether the catalog is pinned (not rebuilt).
	pcat bool
	// pres indicates whether the resolver is pinned (not rebuilt).
	pres bool
}

// clone returns a shallow copy of s for derive-and-publish writers.
func (s *state) clone() *state {
	n := *s
	return &n
}
