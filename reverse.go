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
	"fmt"
	"regexp"
	"strings"

	"rivaas.dev/urljs/route"
)

// reversal is the three-way outcome of reversing one pattern: a discovered
// template, or a comment explaining why this alternative is skipped
// (overruled by a more specific pattern, or not reversible at all). Hard
// failures are returned as errors instead.
type reversal struct {
	template *Template
	comment  string
	attempts int
}

// reverseRequest carries one pattern together with its tree context into
// the reverser.
type reverseRequest struct {
	pattern     *route.Pattern
	qname       string
	app         string
	prefixes    []*route.Pattern // namespace fragments above this leaf
	numPatterns int              // patterns sharing this qualified name
}

// reversePattern discovers a parameterized path template for one pattern by
// probing the oracle with registered placeholder values and diffing each
// returned path against the pattern's own matcher.
//
// The guess-and-check loop is O(n^p) in the candidate count n and parameter
// count p, bounded by the configured ceiling. Placeholders are tried most
// specific first, so specific registrations exit the loop quickly.
func (g *run) reversePattern(req reverseRequest) (*reversal, error) {
	p := req.pattern

	// Parameters of this pattern, then any contributed by enclosing
	// namespace fragments (later fragments refine earlier declarations).
	params := append([]route.Param{}, p.Params()...)
	for _, prefix := range req.prefixes {
		for _, pp := range prefix.Params() {
			replaced := false
			for i := range params {
				if params[i].Name == pp.Name {
					params[i] = pp
					replaced = true
					break
				}
			}
			if !replaced {
				params = append(params, pp)
			}
		}
	}

	// With no named parameters, capture groups are positional arguments.
	unnamed := 0
	if len(params) == 0 && p.NumGroups() > 0 {
		unnamed = p.NumGroups()
	}

	// The oracle reverses against the full qualified path, so the matcher
	// must include every enclosing fragment with anchors stripped.
	var core strings.Builder
	for _, prefix := range req.prefixes {
		core.WriteString(prefix.Core())
	}
	core.WriteString(p.Core())
	composite, err := regexp.Compile(core.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: composite matcher: %v", ErrGenerationFailed, req.qname, err)
	}

	defaults := p.Defaults()

	if len(params) == 0 && unnamed == 0 && len(defaults) == 0 {
		return g.reverseSimple(req, composite)
	}

	candidates, paramNames, err := g.candidateSpace(req, params, unnamed)
	if err != nil {
		return nil, err
	}

	rev := &reversal{}
	for combo := range candidates {
		rev.attempts++
		// The ceiling bounds oracle probes: combination limit+1 is
		// rejected before it is ever probed.
		if rev.attempts > g.limit {
			return nil, fmt.Errorf("%w: %s: ceiling %d reached, register more specific placeholders",
				ErrReversalLimitHit, req.qname, g.limit)
		}

		var path string
		if unnamed > 0 {
			path, err = g.oracle.ReverseLookup(req.qname, nil, combo)
		} else {
			kwargs := make(map[string]any, len(combo)+len(defaults))
			for i, name := range paramNames {
				kwargs[name] = combo[i]
			}
			for k, v := range defaults {
				kwargs[k] = v
			}
			path, err = g.oracle.ReverseLookup(req.qname, kwargs, nil)
		}
		if err != nil {
			// Structurally invalid for this pattern; try the next combination.
			continue
		}

		trimmed := strings.TrimLeft(path, "/")
		match := composite.FindStringSubmatchIndex(trimmed)
		if match == nil {
			// The reversal was satisfied by a different pattern further
			// down the tree.
			if unnamed > 0 {
				rev.comment = fmt.Sprintf("path '%s' overruled with %d args", core.String(), unnamed)
			} else {
				rev.comment = fmt.Sprintf("path '%s' overruled with kwargs [%s]",
					core.String(), strings.Join(paramNames, ", "))
			}
			return rev, nil
		}

		rev.template = spliceTemplate(trimmed, match, composite, unnamed > 0, paramNames, defaults, req.numPatterns)
		return rev, nil
	}

	// Candidate space exhausted. Patterns mixing named and unnamed capture
	// groups cannot be reversed by the oracle even when well-formed; leave
	// a breadcrumb instead of failing the run.
	if unnamed != p.NumGroups() {
		named := 0
		for _, name := range p.GroupNames()[1:] {
			if name != "" {
				named++
			}
		}
		if unaccounted := p.NumGroups() - named; unaccounted > 0 && unaccounted-p.NonCapturing() > 0 {
			rev.comment = "this path may not be reversible"
			return rev, nil
		}
	}

	if unnamed > 0 {
		return nil, fmt.Errorf("%w: %s with %d positional arguments; register placeholders for this url",
			ErrGenerationFailed, req.qname, unnamed)
	}
	return nil, fmt.Errorf("%w: %s with kwargs [%s]; register placeholders for this url's arguments",
		ErrGenerationFailed, req.qname, strings.Join(paramNames, ", "))
}

// reverseSimple handles patterns with no parameters and no defaults: a
// single oracle probe with just the qualified name.
func (g *run) reverseSimple(req reverseRequest, composite *regexp.Regexp) (*reversal, error) {
	path, err := g.oracle.ReverseLookup(req.qname, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGenerationFailed, req.qname, err)
	}

	rev := &reversal{attempts: 1}
	trimmed := strings.TrimLeft(path, "/")
	if composite.FindStringIndex(trimmed) == nil {
		rev.comment = fmt.Sprintf("path '%s' overruled", composite.String())
		return rev, nil
	}
	rev.template = literalTemplate(trimmed)
	return rev, nil
}

// candidateSpace builds the ordered candidate iterator for a pattern:
// the Cartesian product of per-parameter (or per-argument-index) candidate
// lists, most specific values first. For positional patterns whose apparent
// argument count is inflated by non-capturing groups, a reduced-arity
// product is chained after the primary one.
func (g *run) candidateSpace(req reverseRequest, params []route.Param, unnamed int) (func(yield func([]any) bool), []string, error) {
	p := req.pattern

	if unnamed > 0 {
		lists, err := g.registry.ResolveUnnamed(p.Name(), unnamed, req.app)
		if err != nil {
			return nil, nil, err
		}
		var reduced [][]any
		if p.NonCapturing() > 0 && unnamed-p.NonCapturing() > 0 {
			// Best effort: the reduced arity may have no registrations.
			reduced, _ = g.registry.ResolveUnnamed(p.Name(), unnamed-p.NonCapturing(), req.app)
		}
		iter := func(yield func([]any) bool) {
			if !product(lists, yield) {
				return
			}
			if reduced != nil {
				product(reduced, yield)
			}
		}
		return iter, nil, nil
	}

	lists := make([][]any, 0, len(params))
	names := make([]string, 0, len(params))
	for _, prm := range params {
		values, err := g.registry.ResolveNamed(prm.Name, req.app, prm.Converter)
		if err != nil {
			return nil, nil, err
		}
		lists = append(lists, values)
		names = append(names, prm.Name)
	}
	iter := func(yield func([]any) bool) {
		product(lists, yield)
	}
	return iter, names, nil
}

// product yields the Cartesian product of lists in odometer order (last
// dimension varying fastest). An empty lists slice yields one empty
// combination. Returns false if the consumer stopped early.
func product(lists [][]any, yield func([]any) bool) bool {
	combo := make([]any, len(lists))
	idx := make([]int, len(lists))

	for {
		for i, j := range idx {
			combo[i] = lists[i][j]
		}
		if !yield(append([]any{}, combo...)) {
			return false
		}

		pos := len(idx) - 1
		for ; pos >= 0; pos-- {
			idx[pos]++
			if idx[pos] < len(lists[pos]) {
				break
			}
			idx[pos] = 0
		}
		if pos < 0 {
			return true
		}
	}
}

// spliceTemplate maps the matched capture-group spans back to parameters
// and splits the concrete path into alternating literal and substitution
// tokens. Groups that are unnamed (in the named case) or that did not
// participate in the match are left as literal text.
func spliceTemplate(path string, match []int, composite *regexp.Regexp, positional bool,
	paramNames []string, defaults map[string]any, numPatterns int,
) *Template {
	groupNames := composite.SubexpNames()

	type span struct {
		start, end int
		sub        *Substitution
	}
	var spans []span
	for i := 1; i <= composite.NumSubexp(); i++ {
		start, end := match[2*i], match[2*i+1]
		if start < 0 {
			continue
		}
		if positional {
			spans = append(spans, span{start, end, &Substitution{Name: "", Index: i - 1}})
		} else if name := groupNames[i]; name != "" {
			spans = append(spans, span{start, end, &Substitution{Name: name, Index: -1}})
		}
	}

	tmpl := &Template{defaults: nil}
	if numPatterns > 1 && len(defaults) > 0 {
		tmpl.defaults = defaults
	}
	if !positional {
		tmpl.params = paramNames
	}

	cursor := 0
	for _, s := range spans {
		if s.start < cursor {
			// Nested group inside an already substituted span.
			continue
		}
		if s.start > cursor {
			tmpl.tokens = append(tmpl.tokens, TemplateToken{Lit: path[cursor:s.start]})
		}
		tmpl.tokens = append(tmpl.tokens, TemplateToken{Sub: s.sub})
		cursor = s.end
	}
	if cursor < len(path) {
		tmpl.tokens = append(tmpl.tokens, TemplateToken{Lit: path[cursor:]})
	}

	for _, tok := range tmpl.tokens {
		if tok.Sub != nil && tok.Sub.Name == "" {
			tmpl.nargs++
		}
	}

	return tmpl
}
