// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package route defines the route configuration model consumed by the urljs
// generator: patterns, namespace groups, typed path converters, and the
// normalized route tree.
//
// A configuration is an ordered list of entries. Each entry is either a
// *Pattern (a leaf, reversible by name) or a *Group (a namespace that nests
// further entries and may contribute a path prefix fragment):
//
//	entries := []route.Entry{
//	    route.Path("").Name("index"),
//	    route.NewGroup("blog",
//	        route.Path("post/<int:id>/").Name("post"),
//	        route.Path("tag/<slug:tag>/").Name("tag"),
//	    ).App("blog_app"),
//	}
//
// Patterns come in two flavors. Path uses converter syntax where parameters
// are declared as <converter:name> segments validated by a registered
// Converter (int, str, slug, uuid, path, or custom). Regex accepts a raw
// regular expression which may contain named or unnamed capture groups.
//
// Build normalizes a configuration into a Tree: qualified names are joined
// with ":" and collapsed, include/exclude prefix filters are applied, and
// subtrees with no reachable leaf patterns are pruned.
package route
