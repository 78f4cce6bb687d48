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

package builder

import (
	"dirpx.dev/lfx/apis"
	"dirpx.dev/lfx/catalog"
	"dirpx.dev/lfx/resolver"
	"dirpx.dev/lfx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildResolver builds and returns a new apis.Resolver based on the
// provided configuration. The default chain tries the Namer fast path
// first and falls back to the memoized reflect strategy.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewReflectStrategy(),
	)
}

// BuildCatalog builds and returns a new apis.Catalog based on the
// provided configuration and resolver. Plans are re-probed on demand,
// so no state is migrated from a previous catalog.
func (b *builder) BuildCatalog(cfg apis.Config, res apis.Resolver, _ apis.Catalog, _ any) apis.Catalog {
	return catalog.New(cfg, res)
}
