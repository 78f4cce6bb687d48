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

package guarded_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/catalog"
	"dirpx.dev/lfx/config"
	"dirpx.dev/lfx/guard"
	"dirpx.dev/lfx/guarded"
	"dirpx.dev/lfx/resolver"
	"dirpx.dev/lfx/strategy"
)

// person is the canonical fixture: identity over the business key, a
// couple of incidental attributes, no optional capabilities.
type person struct {
	Name string
	Age  int
	Note string
}

func (p *person) HashIdentity() uint64 {
	h := uint64(14695981039346656037)
	for _, c := range []byte(p.Name) {
		h = (h ^ uint64(c)) * 1099511628211
	}
	return h ^ uint64(p.Age)
}

// counter opts into in-place addition only.
type counter struct {
	N int
}

func (c *counter) HashIdentity() uint64   { return uint64(c.N) }
func (c *counter) AddInPlace(o any) error { c.N += o.(int); return nil }

// bag opts into item mutation.
type bag struct {
	Label string
	Items map[string]int
}

func (b *bag) HashIdentity() uint64 {
	h := uint64(len(b.Label))
	for _, c := range []byte(b.Label) {
		h = h*31 + uint64(c)
	}
	return h
}

func (b *bag) SetItem(key, value any) error {
	b.Items[key.(string)] = value.(int)
	return nil
}

func (b *bag) DeleteItem(key any) error {
	delete(b.Items, key.(string))
	return nil
}

// titled controls its own display name and field writes.
type titled struct {
	Title string
	sets  int
}

func (t *titled) HashIdentity() uint64 { return uint64(len(t.Title)) }
func (t *titled) EntityName() string   { return "domain.titled" }
func (t *titled) SetField(name string, value any) error {
	if name == "Title" {
		t.Title = value.(string)
	}
	t.sets++
	return nil
}

// noid has no HashIdentity and must be rejected at registration.
type noid struct {
	X int
}

func env() (apis.Config, apis.Catalog, apis.Resolver) {
	cfg := config.DefaultConfig()
	res := resolver.New(strategy.NewNamerStrategy(), strategy.NewReflectStrategy())
	return cfg, catalog.New(cfg, res), res
}

func register[T any](t *testing.T, opts ...config.RegOption) *guarded.Type[T] {
	t.Helper()
	cfg, cat, res := env()
	typ, err := guarded.Register[T](cfg, cat, res, config.NewOptions(opts...))
	require.NoError(t, err)
	return typ
}

func wrap[T any](t *testing.T, typ *guarded.Type[T], v *T) *guarded.Guarded[T] {
	t.Helper()
	g, err := typ.Wrap(v)
	require.NoError(t, err)
	return g
}

func TestMutableBeforeHash(t *testing.T) {
	typ := register[person](t)
	p := &person{Name: "Alice", Age: 30, Note: "x"}
	g := wrap(t, typ, p)

	require.False(t, g.Frozen())
	require.NoError(t, g.SetField("Age", 31))
	require.Equal(t, 31, p.Age)
	require.NoError(t, g.DeleteField("Note"))
	require.Equal(t, "", p.Note)
	require.False(t, g.Frozen(), "mutation alone must never freeze")
}

func TestHashFreezesAndIsStable(t *testing.T) {
	typ := register[person](t)
	p := &person{Name: "Alice", Age: 30}
	g := wrap(t, typ, p)

	h1 := g.Hash()
	require.Equal(t, p.HashIdentity(), h1, "wrapper must return the entity's own hash")
	require.True(t, g.Frozen())

	// Re-hashing is pure.
	require.Equal(t, h1, g.Hash())
	require.True(t, g.Frozen())

	// A rejected mutation changes nothing.
	err := g.SetField("Age", 99)
	require.ErrorIs(t, err, guard.ErrFrozen)
	require.Equal(t, 30, p.Age)

	var fe *guard.FreezeError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, apis.OpSetField, fe.Op)
	require.Equal(t, "Age", fe.Target)
	require.Contains(t, fe.Entity, "person")

	require.ErrorIs(t, g.DeleteField("Age"), guard.ErrFrozen)
	require.Equal(t, 30, p.Age)
}

func TestPartialProtection(t *testing.T) {
	typ := register[person](t, config.WithProtected("Age"))
	p := &person{Name: "Alice", Age: 30, Note: "draft"}
	g := wrap(t, typ, p)

	g.Hash()

	require.ErrorIs(t, g.SetField("Age", 99), guard.ErrFrozen)
	require.Equal(t, 30, p.Age)

	// Unlisted attributes stay writable after the freeze.
	require.NoError(t, g.SetField("Note", "final"))
	require.Equal(t, "final", p.Note)
	require.NoError(t, g.DeleteField("Note"))
	require.Equal(t, "", p.Note)
}

func TestCaptureSite(t *testing.T) {
	t.Run("diagnostics mode records the hash call site", func(t *testing.T) {
		typ := register[person](t, config.WithDebug())
		g := wrap(t, typ, &person{Name: "Alice"})

		require.Empty(t, g.CaptureSite())
		g.Hash()
		site := g.CaptureSite()
		require.Contains(t, site, "TestCaptureSite")
		require.Contains(t, site, "guarded_test.go")

		// The site survives re-hashing unchanged.
		g.Hash()
		require.Equal(t, site, g.CaptureSite())

		err := g.SetField("Age", 1)
		var fe *guard.FreezeError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, site, fe.Site)
		require.Contains(t, err.Error(), "hash was taken at:")
	})

	t.Run("no capture outside diagnostics mode", func(t *testing.T) {
		typ := register[person](t)
		g := wrap(t, typ, &person{Name: "Alice"})
		g.Hash()
		require.Empty(t, g.CaptureSite())

		err := g.SetField("Age", 1)
		var fe *guard.FreezeError
		require.ErrorAs(t, err, &fe)
		require.Empty(t, fe.Site)
	})
}

func TestSetItem_GuardBeforeSupport(t *testing.T) {
	// person never defined item assignment.
	typ := register[person](t)
	g := wrap(t, typ, &person{Name: "Alice"})

	// Unfrozen: the distinct unsupported-operation error.
	err := g.SetItem("color", "red")
	require.ErrorIs(t, err, guard.ErrUnsupported)
	require.NotErrorIs(t, err, guard.ErrFrozen)

	// Frozen: the freeze guard wins, even though the op never existed.
	g.Hash()
	err = g.SetItem("color", "red")
	require.ErrorIs(t, err, guard.ErrFrozen)

	err = g.DeleteItem("color")
	require.ErrorIs(t, err, guard.ErrFrozen)
}

func TestItemMutation(t *testing.T) {
	typ := register[bag](t)
	b := &bag{Label: "b", Items: map[string]int{"a": 1}}
	g := wrap(t, typ, b)

	require.NoError(t, g.SetItem("b", 2))
	require.Equal(t, 2, b.Items["b"])
	require.NoError(t, g.DeleteItem("a"))
	require.NotContains(t, b.Items, "a")

	g.Hash()
	require.ErrorIs(t, g.SetItem("c", 3), guard.ErrFrozen)
	require.NotContains(t, b.Items, "c")
	require.ErrorIs(t, g.DeleteItem("b"), guard.ErrFrozen)
	require.Equal(t, 2, b.Items["b"])
}

func TestItemMutation_PartialPolicyMatchesKeys(t *testing.T) {
	typ := register[bag](t, config.WithProtected("a"))
	b := &bag{Label: "b", Items: map[string]int{"a": 1, "z": 26}}
	g := wrap(t, typ, b)
	g.Hash()

	require.ErrorIs(t, g.SetItem("a", 2), guard.ErrFrozen)
	require.Equal(t, 1, b.Items["a"])

	require.NoError(t, g.SetItem("z", 0))
	require.Equal(t, 0, b.Items["z"])
	require.NoError(t, g.DeleteItem("z"))
}

func TestApply_InPlaceOperators(t *testing.T) {
	typ := register[counter](t)
	c := &counter{N: 10}
	g := wrap(t, typ, c)

	require.NoError(t, g.Apply(apis.OpAdd, 5))
	require.Equal(t, 15, c.N)

	// Undefined operator on an unfrozen entity.
	err := g.Apply(apis.OpMul, 2)
	require.ErrorIs(t, err, guard.ErrUnsupported)
	require.Equal(t, 15, c.N)

	g.Hash()
	require.ErrorIs(t, g.Apply(apis.OpAdd, 5), guard.ErrFrozen)
	require.Equal(t, 15, c.N)
	// Guard still precedes the support check.
	require.ErrorIs(t, g.Apply(apis.OpMul, 2), guard.ErrFrozen)
}

func TestApply_InPlaceRejectedDespitePartialPolicy(t *testing.T) {
	typ := register[counter](t, config.WithProtected("N"))
	c := &counter{N: 1}
	g := wrap(t, typ, c)
	g.Hash()

	// Attribute "N" is listed, but in-place operators carry no target
	// name and are never exempted.
	require.ErrorIs(t, g.Apply(apis.OpAdd, 1), guard.ErrFrozen)
	require.Equal(t, 1, c.N)
}

func TestApply_RejectsNonInPlaceOps(t *testing.T) {
	typ := register[counter](t)
	g := wrap(t, typ, &counter{})

	require.ErrorIs(t, g.Apply(apis.OpSetField, 1), guarded.ErrNotInPlace)
	require.ErrorIs(t, g.Apply(apis.OpSetItem, 1), guarded.ErrNotInPlace)
}

func TestFieldOverrides(t *testing.T) {
	typ := register[titled](t)
	v := &titled{Title: "draft"}
	g := wrap(t, typ, v)

	require.True(t, typ.Plan().OverridesSet)
	require.NoError(t, g.SetField("Title", "final"))
	require.Equal(t, "final", v.Title)
	require.Equal(t, 1, v.sets, "override must receive the write")
}

func TestEntityName_NamerWins(t *testing.T) {
	typ := register[titled](t)
	g := wrap(t, typ, &titled{Title: "x"})

	require.Equal(t, "domain.titled", g.EntityName())

	g.Hash()
	err := g.SetField("Title", "y")
	require.ErrorContains(t, err, "domain.titled")
}

func TestIndependentLatches(t *testing.T) {
	typ := register[person](t)
	p := &person{Name: "Alice"}
	g1 := wrap(t, typ, p)
	g2 := wrap(t, typ, p)

	g1.Hash()
	require.True(t, g1.Frozen())
	require.False(t, g2.Frozen(), "each wrapper owns its latch")
	require.NoError(t, g2.SetField("Age", 1))
}

func TestRegister_Validation(t *testing.T) {
	cfg, cat, res := env()

	_, err := guarded.Register[int](cfg, cat, res, config.NewOptions())
	require.ErrorIs(t, err, guarded.ErrNotStruct)

	_, err = guarded.Register[noid](cfg, cat, res, config.NewOptions())
	require.ErrorIs(t, err, guarded.ErrMissingIdentity)

	_, err = guarded.Register[person](cfg, nil, res, config.NewOptions())
	require.Error(t, err)
}

func TestWrap_NilTarget(t *testing.T) {
	typ := register[person](t)
	_, err := typ.Wrap(nil)
	require.ErrorIs(t, err, guarded.ErrNilTarget)
}

func TestUnwrap_BypassesGuard(t *testing.T) {
	typ := register[person](t)
	p := &person{Name: "Alice", Age: 30}
	g := wrap(t, typ, p)
	g.Hash()

	require.Same(t, p, g.Unwrap())
}
