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

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultCaptureDepth represents the default for CaptureDepth.
	// Deep enough to reach the hash-triggering call site through a few
	// layers of collection plumbing.
	DefaultCaptureDepth = 32
	// DefaultQualifiedNames represents the default for QualifiedNames.
	// When true, reflect-derived entity names are package-qualified.
	DefaultQualifiedNames = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure limits are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.CaptureDepth <= 0 {
		cfg.CaptureDepth = DefaultCaptureDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:      DefaultMaxUnwrap,
		CaptureDepth:   DefaultCaptureDepth,
		QualifiedNames: DefaultQualifiedNames,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithCaptureDepth sets the CaptureDepth option.
// A non-positive value resets to the default.
func WithCaptureDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.CaptureDepth = DefaultCaptureDepth
			return
		}
		c.CaptureDepth = depth
	}
}

// WithQualifiedNames sets the QualifiedNames option.
func WithQualifiedNames(qualified bool) Option {
	return func(c *apis.Config) {
		c.QualifiedNames = qualified
	}
}
