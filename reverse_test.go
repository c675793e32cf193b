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
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/urljs/placeholders"
	"rivaas.dev/urljs/route"
)

func newTestRun(t *testing.T, entries []route.Entry, reg *placeholders.Registry) *run {
	t.Helper()
	if reg == nil {
		reg = placeholders.NewRegistry()
	}
	return &run{
		ctx:      context.Background(),
		registry: reg,
		oracle:   NewOracle(entries),
		limit:    DefaultReversalLimit,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func TestReversePattern_Named(t *testing.T) {
	t.Parallel()

	p := route.Path("detail/<int:id>/").SetName("detail")
	r := newTestRun(t, []route.Entry{p}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: p, qname: "detail", numPatterns: 1})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.Equal(t, 1, rev.attempts, "the converter example must succeed immediately")

	tokens := rev.template.Tokens()
	require.Len(t, tokens, 3)
	assert.Equal(t, "detail/", tokens[0].Lit)
	require.NotNil(t, tokens[1].Sub)
	assert.Equal(t, "id", tokens[1].Sub.Name)
	assert.Equal(t, "/", tokens[2].Lit)
	assert.Equal(t, []string{"id"}, rev.template.Params())

	path, err := rev.template.Render(map[string]any{"id": 42}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/detail/42/", path)
}

func TestReversePattern_Literal(t *testing.T) {
	t.Parallel()

	p := route.Path("about/").SetName("about")
	r := newTestRun(t, []route.Entry{p}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: p, qname: "about", numPatterns: 1})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.True(t, rev.template.IsLiteral())

	path, err := rev.template.Render(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/about/", path)
}

func TestReversePattern_Positional(t *testing.T) {
	t.Parallel()

	p := route.Regex(`^item/([0-9]+)/rev/([0-9]+)/$`).SetName("item")
	reg := placeholders.NewRegistry(placeholders.WithoutCommonPlaceholders())
	reg.RegisterUnnamed("item", []any{1, 2})
	r := newTestRun(t, []route.Entry{p}, reg)

	rev, err := r.reversePattern(reverseRequest{pattern: p, qname: "item", numPatterns: 1})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.Equal(t, 2, rev.template.NumArgs())
	assert.Empty(t, rev.template.Params())

	path, err := rev.template.Render(nil, []any{8, 9})
	require.NoError(t, err)
	assert.Equal(t, "/item/8/rev/9/", path)
}

func TestReversePattern_OverruledNamed(t *testing.T) {
	t.Parallel()

	overruled := route.Path("item/<int:ref>/").SetName("item")
	winner := route.Path("object/<slug:ref>/").SetName("item")
	r := newTestRun(t, []route.Entry{overruled, winner}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: overruled, qname: "item", numPatterns: 2})
	require.NoError(t, err)
	assert.Nil(t, rev.template)
	assert.Contains(t, rev.comment, "overruled")
	assert.Contains(t, rev.comment, "ref")

	// The winning pattern still reverses normally.
	rev, err = r.reversePattern(reverseRequest{pattern: winner, qname: "item", numPatterns: 2})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
}

func TestReversePattern_OverruledLiteral(t *testing.T) {
	t.Parallel()

	overruled := route.Path("old/").SetName("home")
	winner := route.Path("new/").SetName("home")
	r := newTestRun(t, []route.Entry{overruled, winner}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: overruled, qname: "home", numPatterns: 2})
	require.NoError(t, err)
	assert.Nil(t, rev.template)
	assert.Contains(t, rev.comment, "overruled")
}

func TestReversePattern_MixedGroupsComment(t *testing.T) {
	t.Parallel()

	p := route.Regex(`^mix/(?P<year>[0-9]{4})/([0-9]+)/$`).SetName("mix")
	r := newTestRun(t, []route.Entry{p}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: p, qname: "mix", numPatterns: 1})
	require.NoError(t, err)
	assert.Nil(t, rev.template)
	assert.Equal(t, "this path may not be reversible", rev.comment)
}

func TestReversePattern_LimitHit(t *testing.T) {
	t.Parallel()

	p := route.Path("a/<x>/<y>/").SetName("a")
	r := newTestRun(t, []route.Entry{p}, nil)
	r.limit = 1
	// An oracle that never succeeds forces the loop to run past the limit.
	r.oracle = OracleFunc(func(string, map[string]any, []any) (string, error) {
		return "", ErrNoReverseMatch
	})

	_, err := r.reversePattern(reverseRequest{pattern: p, qname: "a", numPatterns: 1})
	require.ErrorIs(t, err, ErrReversalLimitHit)
}

func TestReversePattern_ExhaustedFails(t *testing.T) {
	t.Parallel()

	// None of the common placeholders satisfies a six-digit code.
	p := route.Regex(`^secret/(?P<code>[0-9]{6})/$`).SetName("secret")
	r := newTestRun(t, []route.Entry{p}, nil)

	_, err := r.reversePattern(reverseRequest{pattern: p, qname: "secret", numPatterns: 1})
	require.ErrorIs(t, err, ErrGenerationFailed)

	// Registering a fitting placeholder fixes the reversal.
	reg := placeholders.NewRegistry()
	reg.RegisterVariable("code", "123456")
	r.registry = reg
	rev, err := r.reversePattern(reverseRequest{pattern: p, qname: "secret", numPatterns: 1})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
}

func TestReversePattern_MissingPlaceholders(t *testing.T) {
	t.Parallel()

	p := route.Path("a/<x>/").SetName("a")
	r := newTestRun(t, []route.Entry{p}, placeholders.NewRegistry(placeholders.WithoutCommonPlaceholders()))

	_, err := r.reversePattern(reverseRequest{pattern: p, qname: "a", numPatterns: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, placeholders.ErrPlaceholderNotFound))
}

func TestReversePattern_PrefixParamsMerged(t *testing.T) {
	t.Parallel()

	prefix := route.Path("docs/<str:lang>/")
	leaf := route.Path("page/<slug:name>/").SetName("page")
	entries := []route.Entry{
		route.NewGroup("docs", leaf).Prefix(prefix),
	}
	r := newTestRun(t, entries, nil)

	rev, err := r.reversePattern(reverseRequest{
		pattern:     leaf,
		qname:       "docs:page",
		prefixes:    []*route.Pattern{prefix},
		numPatterns: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.ElementsMatch(t, []string{"name", "lang"}, rev.template.Params())

	path, err := rev.template.Render(map[string]any{"lang": "en", "name": "intro"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/docs/en/page/intro/", path)
}

func TestReversePattern_DefaultsOnlyWithSiblings(t *testing.T) {
	t.Parallel()

	solo := route.Path("page/<int:num>/").SetName("page").Default("num", 1)
	r := newTestRun(t, []route.Entry{solo}, nil)

	rev, err := r.reversePattern(reverseRequest{pattern: solo, qname: "page", numPatterns: 1})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.Nil(t, rev.template.Defaults(), "defaults are only emitted when alternatives exist")

	rev, err = r.reversePattern(reverseRequest{pattern: solo, qname: "page", numPatterns: 2})
	require.NoError(t, err)
	require.NotNil(t, rev.template)
	assert.Equal(t, map[string]any{"num": 1}, rev.template.Defaults())
}

func TestProduct_OdometerOrder(t *testing.T) {
	t.Parallel()

	var got [][]any
	product([][]any{{1, 2}, {"a", "b"}}, func(combo []any) bool {
		got = append(got, combo)
		return true
	})
	require.Equal(t, [][]any{
		{1, "a"}, {1, "b"},
		{2, "a"}, {2, "b"},
	}, got)
}

func TestProduct_EmptyDimensions(t *testing.T) {
	t.Parallel()

	count := 0
	product(nil, func(combo []any) bool {
		count++
		assert.Empty(t, combo)
		return true
	})
	assert.Equal(t, 1, count, "zero dimensions yield exactly one empty combination")
}
