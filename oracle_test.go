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

package urljs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/urljs/route"
)

func TestOracle_NamedReversal(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Path("article/<int:year>/<slug:title>/").SetName("article"),
	})

	path, err := oracle.ReverseLookup("article", map[string]any{"year": 2024, "title": "go"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/article/2024/go/", path)
}

func TestOracle_RejectsValuesFailingTheMatcher(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Path("article/<int:year>/").SetName("article"),
	})

	_, err := oracle.ReverseLookup("article", map[string]any{"year": "not-a-number"}, nil)
	assert.ErrorIs(t, err, ErrNoReverseMatch)
}

func TestOracle_MostRecentPatternWins(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Path("item/<int:ref>/").SetName("item"),
		route.Path("object/<slug:ref>/").SetName("item"),
	})

	// A slug value only satisfies the later pattern.
	path, err := oracle.ReverseLookup("item", map[string]any{"ref": "my-slug"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/object/my-slug/", path)

	// An int value satisfies the later pattern too: slug admits digits, so
	// the most recently registered pattern takes precedence.
	path, err = oracle.ReverseLookup("item", map[string]any{"ref": 42}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/object/42/", path)
}

func TestOracle_PositionalReversal(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Regex(`^item/([0-9]+)/$`).SetName("item"),
	})

	path, err := oracle.ReverseLookup("item", nil, []any{5})
	require.NoError(t, err)
	assert.Equal(t, "/item/5/", path)

	_, err = oracle.ReverseLookup("item", nil, []any{5, 6})
	assert.ErrorIs(t, err, ErrNoReverseMatch, "arity must match the slot count")
}

func TestOracle_MixedArgumentsRejected(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Path("a/<int:x>/").SetName("a"),
	})

	_, err := oracle.ReverseLookup("a", map[string]any{"x": 1}, []any{2})
	assert.ErrorIs(t, err, ErrNoReverseMatch)
}

func TestOracle_NamespacePrefixFolding(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.NewGroup("docs",
			route.Path("page/<slug:name>/").SetName("page"),
		).Prefix(route.Path("docs/<str:lang>/")),
	})

	path, err := oracle.ReverseLookup("docs:page", map[string]any{"lang": "en", "name": "intro"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/docs/en/page/intro/", path)

	// The prefix parameter is required.
	_, err = oracle.ReverseLookup("docs:page", map[string]any{"name": "intro"}, nil)
	assert.ErrorIs(t, err, ErrNoReverseMatch)
}

func TestOracle_DefaultsFillAndMustBeRestated(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.Path("page/<int:num>/").SetName("page").Default("num", 1),
		route.Path("page/").SetName("page").Default("num", 1),
	})

	// Omitted defaulted argument: the literal alternative wins (most
	// recent), with the default satisfied implicitly.
	path, err := oracle.ReverseLookup("page", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/page/", path)

	// An extra argument matching the declared default is accepted by the
	// literal pattern.
	path, err = oracle.ReverseLookup("page", map[string]any{"num": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/page/", path)

	// A different value falls through to the parameterized pattern.
	path, err = oracle.ReverseLookup("page", map[string]any{"num": 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/page/3/", path)
}

func TestOracle_UnknownName(t *testing.T) {
	t.Parallel()

	oracle := NewOracle(nil)
	_, err := oracle.ReverseLookup("nope", nil, nil)
	assert.ErrorIs(t, err, ErrNoReverseMatch)
}

func TestOracle_QNameNormalized(t *testing.T) {
	t.Parallel()

	oracle := NewOracle([]route.Entry{
		route.NewGroup("blog",
			route.Path("posts/").SetName("index"),
		),
	})

	path, err := oracle.ReverseLookup("blog::index", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/posts/", path)
}

func TestOracleFunc_Adapter(t *testing.T) {
	t.Parallel()

	fn := OracleFunc(func(qname string, kwargs map[string]any, args []any) (string, error) {
		return "/fixed/", nil
	})
	path, err := fn.ReverseLookup("anything", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/fixed/", path)
}
