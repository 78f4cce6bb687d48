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

package apis

// Builder composes Resolver and Catalog from a Config. The Catalog
// consumes the Resolver (plans carry resolved entity names), so the
// Resolver is built first.
// Implementations may migrate state from previous instances (prev), or ignore them.
type Builder interface {
	// BuildResolver constructs a Resolver for Config. May reuse state
	// from a previous resolver.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildResolver(cfg Config, prev Resolver, ext any) Resolver
	// BuildCatalog constructs a Catalog for Config using res for plan
	// names. Plans are cheap to re-probe, so implementations typically
	// start fresh rather than migrating from the previous catalog.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildCatalog(cfg Config, res Resolver, prev Catalog, ext any) Catalog
}
