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

import (
	"slices"
	"strings"
)

// Tree is one node of the normalized route tree: a namespace holding leaf
// groups (patterns indexed by reversible name, in registration order) and
// child namespaces. After Build, every remaining subtree contains at least
// one leaf pattern.
type Tree struct {
	namespace string
	app       string
	prefix    *Pattern
	children  []*Tree
	childIdx  map[string]*Tree
	groups    []*LeafGroup
	groupIdx  map[string]*LeafGroup
}

// LeafGroup is the ordered list of patterns registered under one reversible
// name within a namespace.
type LeafGroup struct {
	name     string
	patterns []*Pattern
}

// Name returns the group's (unqualified) reversible name.
func (lg *LeafGroup) Name() string {
	return lg.name
}

// Patterns returns the group's patterns in registration order.
func (lg *LeafGroup) Patterns() []*Pattern {
	return lg.patterns
}

// Namespace returns the node's namespace name (empty for the root).
func (t *Tree) Namespace() string {
	return t.namespace
}

// AppName returns the owning application identifier for patterns at this
// node (empty if unset).
func (t *Tree) AppName() string {
	return t.app
}

// PrefixPattern returns the path fragment this namespace contributes to its
// descendants, or nil.
func (t *Tree) PrefixPattern() *Pattern {
	return t.prefix
}

// Children returns child namespaces in registration order.
func (t *Tree) Children() []*Tree {
	return t.children
}

// Groups returns the node's leaf groups in registration order.
func (t *Tree) Groups() []*LeafGroup {
	return t.groups
}

func newTree(namespace, app string, prefix *Pattern) *Tree {
	return &Tree{
		namespace: namespace,
		app:       app,
		prefix:    prefix,
		childIdx:  make(map[string]*Tree),
		groupIdx:  make(map[string]*LeafGroup),
	}
}

func (t *Tree) ensureChild(namespace, app string, prefix *Pattern) *Tree {
	if child, ok := t.childIdx[namespace]; ok {
		return child
	}
	child := newTree(namespace, app, prefix)
	t.childIdx[namespace] = child
	t.children = append(t.children, child)
	return child
}

func (t *Tree) addPattern(p *Pattern) {
	group, ok := t.groupIdx[p.Name()]
	if !ok {
		group = &LeafGroup{name: p.Name()}
		t.groupIdx[p.Name()] = group
		t.groups = append(t.groups, group)
	}
	group.patterns = append(group.patterns, p)
}

// NormalizeQName collapses empty segments out of a colon-delimited
// qualified name ("blog::post" becomes "blog:post").
func NormalizeQName(qname string) string {
	segments := strings.Split(qname, ":")
	kept := segments[:0]
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ":")
}

// JoinQName appends a name to a qualified-name prefix.
func JoinQName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

// Build normalizes a route configuration into a pruned tree and returns it
// together with the total number of leaf patterns kept.
//
// include and exclude are qualified names (normalized before use). A leaf
// is kept iff it is implicitly included (no include filter, or an enclosing
// namespace — or the empty prefix — is explicitly included) or its
// qualified name appears in include, and its qualified name does not appear
// in exclude. A group whose qualified name is excluded is skipped without
// descending. Subtrees left without any leaf pattern are pruned; patterns
// without a name are dropped silently.
func Build(entries []Entry, include, exclude []string) (*Tree, int) {
	var inc, exc []string
	for _, s := range include {
		inc = append(inc, NormalizeQName(s))
	}
	for _, s := range exclude {
		exc = append(exc, NormalizeQName(s))
	}

	root := newTree("", "", nil)
	included := len(inc) == 0 || slices.Contains(inc, "")
	buildBranch(root, entries, included, "", inc, exc)

	count := prune(root)
	return root, count
}

func buildBranch(node *Tree, entries []Entry, included bool, qname string, inc, exc []string) {
	for _, entry := range entries {
		switch e := entry.(type) {
		case *Pattern:
			if e.Name() == "" {
				continue
			}
			leafQ := JoinQName(qname, e.Name())
			if !included && !slices.Contains(inc, leafQ) {
				continue
			}
			if len(exc) > 0 && slices.Contains(exc, leafQ) {
				continue
			}
			node.addPattern(e)

		case *Group:
			nsQ := qname
			child := node
			if e.Name() != "" {
				nsQ = JoinQName(qname, e.Name())
				if len(exc) > 0 && slices.Contains(exc, nsQ) {
					continue
				}
				child = node.ensureChild(e.Name(), e.AppName(), e.PrefixPattern())
			}
			childIncluded := included || len(inc) == 0 || slices.Contains(inc, nsQ)
			buildBranch(child, e.Entries(), childIncluded, nsQ, inc, exc)
		}
	}
}

func prune(node *Tree) int {
	count := 0
	for _, g := range node.groups {
		count += len(g.patterns)
	}

	kept := node.children[:0]
	for _, child := range node.children {
		n := prune(child)
		if n == 0 {
			delete(node.childIdx, child.namespace)
			continue
		}
		kept = append(kept, child)
		count += n
	}
	node.children = kept

	return count
}
