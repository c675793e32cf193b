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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogEntries() []Entry {
	return []Entry{
		Path("").SetName("home"),
		NewGroup("blog",
			Path("posts/").SetName("index"),
			Path("posts/<int:id>/").SetName("detail"),
			NewGroup("draft",
				Path("drafts/<int:id>/").SetName("detail"),
			),
		).App("blog"),
		NewGroup("shop",
			Path("cart/").SetName("cart"),
		),
	}
}

func groupNames(t *Tree) []string {
	names := make([]string, 0, len(t.Groups()))
	for _, g := range t.Groups() {
		names = append(names, g.Name())
	}
	return names
}

func childNames(t *Tree) []string {
	names := make([]string, 0, len(t.Children()))
	for _, c := range t.Children() {
		names = append(names, c.Namespace())
	}
	return names
}

func TestBuild_KeepsEverythingWithoutFilters(t *testing.T) {
	t.Parallel()

	tree, count := Build(blogEntries(), nil, nil)

	assert.Equal(t, 5, count)
	assert.Equal(t, []string{"home"}, groupNames(tree))
	require.Equal(t, []string{"blog", "shop"}, childNames(tree))

	blog := tree.Children()[0]
	assert.Equal(t, "blog", blog.AppName())
	assert.Equal(t, []string{"index", "detail"}, groupNames(blog))
	require.Equal(t, []string{"draft"}, childNames(blog))
	assert.Equal(t, []string{"detail"}, groupNames(blog.Children()[0]))
}

func TestBuild_IncludeNamespaceSelectsSubtree(t *testing.T) {
	t.Parallel()

	tree, count := Build(blogEntries(), []string{"blog"}, nil)

	assert.Equal(t, 3, count)
	assert.Empty(t, groupNames(tree), "root leaves are not included")
	require.Equal(t, []string{"blog"}, childNames(tree))
	assert.Equal(t, []string{"index", "detail"}, groupNames(tree.Children()[0]))
}

func TestBuild_ExcludeNestedNamespace(t *testing.T) {
	t.Parallel()

	tree, count := Build(blogEntries(), []string{"blog"}, []string{"blog:draft"})

	assert.Equal(t, 2, count)
	blog := tree.Children()[0]
	assert.Empty(t, childNames(blog), "excluded namespace must be pruned entirely")
}

func TestBuild_ExcludeSingleLeaf(t *testing.T) {
	t.Parallel()

	tree, count := Build(blogEntries(), nil, []string{"blog:detail"})

	assert.Equal(t, 4, count)
	blog := tree.Children()[0]
	assert.Equal(t, []string{"index"}, groupNames(blog))
	// The equally named leaf in the nested namespace is unaffected.
	require.Equal(t, []string{"draft"}, childNames(blog))
}

func TestBuild_IncludeLeafQName(t *testing.T) {
	t.Parallel()

	tree, count := Build(blogEntries(), []string{"blog:draft:detail"}, nil)

	assert.Equal(t, 1, count)
	require.Equal(t, []string{"blog"}, childNames(tree))
	blog := tree.Children()[0]
	assert.Empty(t, groupNames(blog))
	require.Equal(t, []string{"draft"}, childNames(blog))
}

func TestBuild_EmptyStringIncludesEverything(t *testing.T) {
	t.Parallel()

	// The empty qualified name marks the root as implicitly included,
	// which propagates to the whole tree.
	tree, count := Build(blogEntries(), []string{""}, nil)

	assert.Equal(t, 5, count)
	assert.Equal(t, []string{"home"}, groupNames(tree))
	assert.Equal(t, []string{"blog", "shop"}, childNames(tree))
}

func TestBuild_PrunesEmptySubtrees(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		NewGroup("empty",
			Path("unnamed/"), // no name, dropped
			NewGroup("inner"),
		),
		Path("kept/").SetName("kept"),
	}
	tree, count := Build(entries, nil, nil)

	assert.Equal(t, 1, count)
	assert.Empty(t, childNames(tree))
	assert.Equal(t, []string{"kept"}, groupNames(tree))
}

func TestBuild_AnonymousGroupMergesEntries(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		NewGroup("",
			Path("a/").SetName("a"),
			Path("b/").SetName("b"),
		),
	}
	tree, count := Build(entries, nil, nil)

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"a", "b"}, groupNames(tree))
	assert.Empty(t, childNames(tree))
}

func TestBuild_SameNamePatternsShareGroup(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		Path("item/<int:id>/").SetName("item"),
		Path("item/<slug:ref>/").SetName("item"),
	}
	tree, count := Build(entries, nil, nil)

	assert.Equal(t, 2, count)
	require.Len(t, tree.Groups(), 1)
	assert.Len(t, tree.Groups()[0].Patterns(), 2)
}

func TestNormalizeQName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "blog:post", NormalizeQName("blog::post"))
	assert.Equal(t, "blog:post", NormalizeQName(":blog:post:"))
	assert.Equal(t, "", NormalizeQName("::"))
}

func TestJoinQName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "detail", JoinQName("", "detail"))
	assert.Equal(t, "blog:detail", JoinQName("blog", "detail"))
}
