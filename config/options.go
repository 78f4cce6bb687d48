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

package config

import (
	"dirpx.dev/lfx/apis"
)

// NewOptions constructs the per-registration apis.Options from the
// given options. The defaults are debug off and ProtectAll.
func NewOptions(opts ...RegOption) apis.Options {
	o := apis.Options{Policy: apis.ProtectAll()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RegOption is a functional option that mutates apis.Options during
// registration.
type RegOption func(*apis.Options)

// WithDebug enables diagnostics mode: the freeze call site is captured
// and included in rejection errors.
func WithDebug() RegOption {
	return func(o *apis.Options) {
		o.Debug = true
	}
}

// WithProtected restricts the freeze to the named attributes/items.
// Unlisted named targets stay mutable after the hash is taken. Calling
// it with no names keeps full protection (ProtectAll).
func WithProtected(names ...string) RegOption {
	return func(o *apis.Options) {
		o.Policy = apis.ProtectNamed(names...)
	}
}

// WithPolicy sets the protection policy directly.
func WithPolicy(p apis.Policy) RegOption {
	return func(o *apis.Options) {
		o.Policy = p
	}
}
