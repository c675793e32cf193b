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

package route

// Entry is one element of a route configuration: either a *Pattern leaf or
// a nested *Group namespace.
type Entry interface {
	isEntry()
}

// Group is a namespace nesting further entries. A group may carry an owning
// application identifier used to scope placeholder lookups, and an optional
// prefix pattern contributed to every path registered below it.
type Group struct {
	name    string
	app     string
	prefix  *Pattern
	entries []Entry
}

// NewGroup creates a namespace group. A group with an empty name merges its
// entries into the enclosing namespace.
func NewGroup(name string, entries ...Entry) *Group {
	return &Group{name: name, entries: entries}
}

func (g *Group) isEntry() {}

// App sets the owning application identifier and returns the group for
// chaining.
func (g *Group) App(app string) *Group {
	g.app = app
	return g
}

// Prefix sets the path fragment prepended to every pattern below this group
// and returns the group for chaining. The fragment's parameters become part
// of each descendant pattern's parameter set.
func (g *Group) Prefix(p *Pattern) *Group {
	g.prefix = p
	return g
}

// Add appends entries to the group and returns it for chaining.
func (g *Group) Add(entries ...Entry) *Group {
	g.entries = append(g.entries, entries...)
	return g
}

// Name returns the group's namespace name.
func (g *Group) Name() string {
	return g.name
}

// AppName returns the owning application identifier (empty if unset).
func (g *Group) AppName() string {
	return g.app
}

// PrefixPattern returns the group's prefix fragment, or nil.
func (g *Group) PrefixPattern() *Pattern {
	return g.prefix
}

// Entries returns the group's child entries in registration order.
func (g *Group) Entries() []Entry {
	return g.entries
}
