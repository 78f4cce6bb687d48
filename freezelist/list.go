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

// Package freezelist provides a hashable, ordered sequence container
// with lazy-freeze semantics: the list is freely mutable until its
// identity hash is first computed, and permanently immutable after.
//
// The container implements the freeze state machine natively instead of
// going through the generic interception layer: a sequence's mutation
// surface is fixed and known in advance, and protection is
// all-or-nothing (no per-attribute policy exists for elements).
//
// In diagnostics mode every element being inserted must itself be
// hashable; a violating call is rejected before any mutation happens,
// so a failed multi-element insert never partially applies.
package freezelist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/twmb/murmur3"

	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/guard"
)

// List is an ordered sequence of T with one-shot freeze-on-hash
// semantics. Mutating methods return the list itself for chaining
// (except Pop/PopAt, which return the removed element).
//
// The zero value is an empty, unfrozen list without diagnostics.
type List[T any] struct {
	data  []T
	debug bool

	frozen atomic.Bool
	mu     sync.Mutex
	site   string

	captureDepth int
}

// Option configures a List at construction time.
type Option func(*listConfig)

type listConfig struct {
	debug        bool
	captureDepth int
}

// WithDebug enables diagnostics mode: inserted elements must be
// hashable, and the freeze call site is captured for error messages.
func WithDebug() Option {
	return func(c *listConfig) {
		c.debug = true
	}
}

// WithCaptureDepth limits the recorded freeze call stack. Only
// meaningful together with WithDebug; non-positive values keep the
// default.
func WithCaptureDepth(depth int) Option {
	return func(c *listConfig) {
		if depth > 0 {
			c.captureDepth = depth
		}
	}
}

const defaultCaptureDepth = 32

// New constructs a list owning a copy of elems.
func New[T any](elems []T, opts ...Option) *List[T] {
	cfg := listConfig{captureDepth: defaultCaptureDepth}
	for _, o := range opts {
		o(&cfg)
	}
	data := make([]T, len(elems))
	copy(data, elems)
	return &List[T]{data: data, debug: cfg.debug, captureDepth: cfg.captureDepth}
}

// Hash computes the identity hash over the current elements and freezes
// the list permanently. The digest is order- and duplicate-sensitive:
// the element count and each element's position contribute. Repeated
// calls return the same value for unchanged state and never move the
// capture site.
func (l *List[T]) Hash() uint64 {
	var buf bytes.Buffer
	var scratch [8]byte

	binary.BigEndian.PutUint64(scratch[:], uint64(len(l.data)))
	buf.Write(scratch[:])
	for i, v := range l.data {
		binary.BigEndian.PutUint64(scratch[:], uint64(i))
		buf.Write(scratch[:])
		if id, ok := any(v).(apis.Identity); ok {
			binary.BigEndian.PutUint64(scratch[:], id.HashIdentity())
			buf.Write(scratch[:])
		} else {
			fmt.Fprintf(&buf, "%T:%v", v, v)
		}
		buf.WriteByte(0)
	}
	h := murmur3.Sum64(buf.Bytes())

	l.freeze()
	return h
}

// freeze latches the frozen flag, capturing the call site on the first
// transition when diagnostics mode is on.
func (l *List[T]) freeze() {
	if l.frozen.Load() {
		return
	}
	var site string
	if l.debug {
		// Skip freeze and Hash; the site starts at the hashing caller.
		site = guard.Capture(l.captureDepth, 2)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.frozen.CompareAndSwap(false, true) {
		return
	}
	l.site = site
}

// validate is the shared mutation precondition: in diagnostics mode all
// elements being inserted must be hashable (checked before anything
// mutates), and a frozen list rejects the mutation outright.
func (l *List[T]) validate(inserting ...T) error {
	if l.debug {
		for _, v := range inserting {
			if !hashable(v) {
				return &UnhashableError{Elem: v}
			}
		}
	}
	if l.frozen.Load() {
		return &MutationError{Site: l.CaptureSite()}
	}
	return nil
}

// hashable reports whether v can contribute a stable hash: either it
// carries its own identity hash or its dynamic type is comparable
// (Go's own precondition for map keys).
func hashable(v any) bool {
	if _, ok := v.(apis.Identity); ok {
		return true
	}
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Comparable()
}

// Append adds v at the end.
func (l *List[T]) Append(v T) (*List[T], error) {
	if err := l.validate(v); err != nil {
		return l, err
	}
	l.data = append(l.data, v)
	return l, nil
}

// Insert places v at position i, shifting later elements right.
// Panics if i is out of range [0, Len()].
func (l *List[T]) Insert(i int, v T) (*List[T], error) {
	if i < 0 || i > len(l.data) {
		panic(fmt.Sprintf("lfx(freezelist): insert index %d out of range [0:%d]", i, len(l.data)))
	}
	if err := l.validate(v); err != nil {
		return l, err
	}
	l.data = append(l.data, v)
	copy(l.data[i+1:], l.data[i:])
	l.data[i] = v
	return l, nil
}

// Extend appends every element of elems, in order. This is the
// concatenation operation (the += of the protocol): it mutates the
// receiver and returns it. The hashability check covers the whole batch
// before anything is appended, so a rejected Extend never partially
// applies.
func (l *List[T]) Extend(elems []T) (*List[T], error) {
	if err := l.validate(elems...); err != nil {
		return l, err
	}
	l.data = append(l.data, elems...)
	return l, nil
}

// Remove deletes the first element equal to v (reflect.DeepEqual).
// Returns ErrNotFound when no element matches.
func (l *List[T]) Remove(v T) (*List[T], error) {
	if err := l.validate(); err != nil {
		return l, err
	}
	for i := range l.data {
		if reflect.DeepEqual(l.data[i], v) {
			l.data = append(l.data[:i], l.data[i+1:]...)
			return l, nil
		}
	}
	return l, fmt.Errorf("%w: %v", ErrNotFound, v)
}

// Pop removes and returns the last element.
// Panics on an empty list.
func (l *List[T]) Pop() (T, error) {
	return l.PopAt(len(l.data) - 1)
}

// PopAt removes and returns the element at position i.
// Panics if i is out of range.
func (l *List[T]) PopAt(i int) (T, error) {
	if i < 0 || i >= len(l.data) {
		panic(fmt.Sprintf("lfx(freezelist): pop index %d out of range [0:%d]", i, len(l.data)))
	}
	if err := l.validate(); err != nil {
		var zero T
		return zero, err
	}
	v := l.data[i]
	l.data = append(l.data[:i], l.data[i+1:]...)
	return v, nil
}

// Clear removes all elements.
func (l *List[T]) Clear() (*List[T], error) {
	if err := l.validate(); err != nil {
		return l, err
	}
	l.data = l.data[:0]
	return l, nil
}

// Reverse reverses the elements in place.
func (l *List[T]) Reverse() (*List[T], error) {
	if err := l.validate(); err != nil {
		return l, err
	}
	for i, j := 0, len(l.data)-1; i < j; i, j = i+1, j-1 {
		l.data[i], l.data[j] = l.data[j], l.data[i]
	}
	return l, nil
}

// Sort sorts the elements in place using less. The sort is stable.
func (l *List[T]) Sort(less func(a, b T) bool) (*List[T], error) {
	if err := l.validate(); err != nil {
		return l, err
	}
	sort.SliceStable(l.data, func(i, j int) bool {
		return less(l.data[i], l.data[j])
	})
	return l, nil
}

// Set assigns v at position i.
// Panics if i is out of range.
func (l *List[T]) Set(i int, v T) (*List[T], error) {
	if i < 0 || i >= len(l.data) {
		panic(fmt.Sprintf("lfx(freezelist): index %d out of range [0:%d]", i, len(l.data)))
	}
	if err := l.validate(v); err != nil {
		return l, err
	}
	l.data[i] = v
	return l, nil
}

// Delete removes the element at position i.
// Panics if i is out of range.
func (l *List[T]) Delete(i int) (*List[T], error) {
	if i < 0 || i >= len(l.data) {
		panic(fmt.Sprintf("lfx(freezelist): index %d out of range [0:%d]", i, len(l.data)))
	}
	if err := l.validate(); err != nil {
		return l, err
	}
	l.data = append(l.data[:i], l.data[i+1:]...)
	return l, nil
}

// At returns the element at position i.
// Panics if i is out of range, like a slice index.
func (l *List[T]) At(i int) T {
	return l.data[i]
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.data)
}

// Elems returns a copy of the current elements.
func (l *List[T]) Elems() []T {
	out := make([]T, len(l.data))
	copy(out, l.data)
	return out
}

// Frozen reports whether the list's hash has been taken.
func (l *List[T]) Frozen() bool {
	return l.frozen.Load()
}

// CaptureSite returns the freeze call site, or "" when unfrozen or not
// in diagnostics mode.
func (l *List[T]) CaptureSite() string {
	if !l.frozen.Load() {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.site
}
