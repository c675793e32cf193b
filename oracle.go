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

	"github.com/spf13/cast"

	"rivaas.dev/urljs/route"
)

// Oracle is the authoritative reverse-lookup capability: given a qualified
// route name and either named or positional arguments, it returns the
// concrete path the server would construct, or an error when the
// combination is structurally invalid for every pattern under that name.
//
// The generator treats the oracle as ground truth. It never synthesizes
// paths from matcher patterns itself; porting the generator to a different
// routing system only requires an equivalent authoritative Oracle.
type Oracle interface {
	ReverseLookup(qname string, kwargs map[string]any, args []any) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(qname string, kwargs map[string]any, args []any) (string, error)

// ReverseLookup calls f.
func (f OracleFunc) ReverseLookup(qname string, kwargs map[string]any, args []any) (string, error) {
	return f(qname, kwargs, args)
}

// oracleTarget is one reversible pattern under a qualified name, with the
// prefix fragments of its enclosing namespaces folded in.
type oracleTarget struct {
	pattern    *route.Pattern
	composite  *regexp.Regexp
	tokens     []route.Token
	reversible bool
}

// routeOracle reverses names against a route configuration the same way
// the server does: patterns sharing a qualified name are tried most
// recently registered first, argument values are substituted into the
// pattern's literal expansion, and the built path must satisfy the full
// anchored matcher (prefix fragments included) to be returned.
type routeOracle struct {
	targets map[string][]*oracleTarget
}

// NewOracle builds the bundled reference oracle over a route configuration.
// Include/exclude filters do not apply here: reversal always consults the
// complete configuration, exactly as the server would.
func NewOracle(entries []route.Entry) Oracle {
	o := &routeOracle{targets: make(map[string][]*oracleTarget)}
	o.collect(entries, "", nil)
	return o
}

func (o *routeOracle) collect(entries []route.Entry, qname string, prefixes []*route.Pattern) {
	for _, entry := range entries {
		switch e := entry.(type) {
		case *route.Pattern:
			if e.Name() == "" {
				continue
			}
			q := route.JoinQName(qname, e.Name())
			o.targets[q] = append(o.targets[q], newOracleTarget(e, prefixes))

		case *route.Group:
			nsQ := qname
			nested := prefixes
			if e.Name() != "" {
				nsQ = route.JoinQName(qname, e.Name())
				if p := e.PrefixPattern(); p != nil {
					nested = append(append([]*route.Pattern{}, prefixes...), p)
				}
			}
			o.collect(e.Entries(), nsQ, nested)
		}
	}
}

func newOracleTarget(p *route.Pattern, prefixes []*route.Pattern) *oracleTarget {
	var core strings.Builder
	for _, prefix := range prefixes {
		core.WriteString(prefix.Core())
	}
	core.WriteString(p.Core())

	t := &oracleTarget{pattern: p, reversible: true}

	composite, err := regexp.Compile("^(?:" + core.String() + ")$")
	if err != nil {
		t.reversible = false
		return t
	}
	t.composite = composite

	pos := 0
	for _, fragment := range append(append([]*route.Pattern{}, prefixes...), p) {
		tokens, ok := fragment.ReverseTokens()
		if !ok {
			t.reversible = false
			return t
		}
		for _, tok := range tokens {
			if tok.Kind == route.TokenPositional {
				tok.Pos = pos
				pos++
			}
			t.tokens = append(t.tokens, tok)
		}
	}
	return t
}

// ReverseLookup implements Oracle.
func (o *routeOracle) ReverseLookup(qname string, kwargs map[string]any, args []any) (string, error) {
	targets := o.targets[route.NormalizeQName(qname)]
	if len(targets) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoReverseMatch, qname)
	}

	// Most recently registered pattern wins.
	for i := len(targets) - 1; i >= 0; i-- {
		if path, ok := targets[i].build(kwargs, args); ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w for %q with kwargs=%v args=%v", ErrNoReverseMatch, qname, kwargs, args)
}

func (t *oracleTarget) build(kwargs map[string]any, args []any) (string, bool) {
	if !t.reversible {
		return "", false
	}
	if len(args) > 0 && len(kwargs) > 0 {
		// Named and positional arguments cannot be mixed in one lookup.
		return "", false
	}

	defaults := t.pattern.Defaults()

	npos := 0
	for _, tok := range t.tokens {
		if tok.Kind == route.TokenPositional {
			npos++
		}
	}
	if len(args) > 0 && len(args) != npos {
		return "", false
	}

	if len(kwargs) > 0 || len(args) == 0 {
		// Every extra argument beyond the declared parameters must
		// restate a declared default.
		declared := make(map[string]bool)
		for _, tok := range t.tokens {
			if tok.Kind == route.TokenNamed {
				declared[tok.Param] = true
			}
		}
		for k, v := range kwargs {
			if declared[k] {
				continue
			}
			dv, ok := defaults[k]
			if !ok || cast.ToString(dv) != cast.ToString(v) {
				return "", false
			}
		}
	}

	var b strings.Builder
	for _, tok := range t.tokens {
		switch tok.Kind {
		case route.TokenLiteral:
			b.WriteString(tok.Lit)
		case route.TokenNamed:
			if len(args) > 0 {
				return "", false
			}
			v, ok := kwargs[tok.Param]
			if !ok {
				v, ok = defaults[tok.Param]
			}
			if !ok {
				return "", false
			}
			b.WriteString(cast.ToString(v))
		case route.TokenPositional:
			if tok.Pos >= len(args) {
				return "", false
			}
			b.WriteString(cast.ToString(args[tok.Pos]))
		}
	}

	built := b.String()
	if !t.composite.MatchString(built) {
		return "", false
	}
	return "/" + built, true
}
