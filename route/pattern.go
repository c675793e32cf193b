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
	"fmt"
	"maps"
	"regexp"
	"strings"
)

// Param is one declared parameter of a pattern, in order of appearance.
// Converter is nil for untyped parameters derived from raw regex groups.
type Param struct {
	Name      string
	Converter *Converter
}

// TokenKind discriminates the token variants of a reversal token list.
type TokenKind uint8

const (
	// TokenLiteral is a fixed text fragment.
	TokenLiteral TokenKind = iota
	// TokenNamed is a slot filled by a named argument.
	TokenNamed
	// TokenPositional is a slot filled by a positional argument.
	TokenPositional
)

// Token is one element of a pattern's derived reversal token list.
type Token struct {
	Kind  TokenKind
	Lit   string // literal text, for TokenLiteral
	Param string // parameter name, for TokenNamed
	Pos   int    // argument index, for TokenPositional
}

// Pattern is one matchable path fragment, registered under a reversible
// name. Patterns are immutable once handed to Build; the fluent setters are
// meant for configuration time only.
type Pattern struct {
	name         string
	core         string // regex source with anchors stripped
	isPath       bool
	re           *regexp.Regexp
	params       []Param
	defaults     map[string]any
	tokens       []Token
	reversible   bool
	nonCapturing int
}

var paramName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Path creates a pattern from converter syntax, e.g. "post/<int:id>/".
// Parameters are declared as <converter:name> (or <name>, defaulting to the
// str converter) and are validated by the converter's regex fragment.
//
// Panics on malformed syntax or an unregistered converter. This is
// intentional for validation during application startup.
func Path(path string) *Pattern {
	core, tokens, params := parsePath(path)
	return &Pattern{
		core:       core,
		isPath:     true,
		re:         mustCompileCore(core),
		params:     params,
		tokens:     tokens,
		reversible: true,
	}
}

// Regex creates a pattern from a raw regular expression. Leading "^" and
// trailing "$" anchors are stripped; the pattern may contain named
// ((?P<name>...)) or unnamed capture groups. Unnamed groups make the
// pattern reversible by positional arguments only.
//
// Panics on an invalid expression, for early detection during startup.
func Regex(expr string) *Pattern {
	core := strings.TrimSuffix(strings.TrimPrefix(expr, "^"), "$")
	re := mustCompileCore(core)

	var params []Param
	for _, name := range re.SubexpNames()[1:] {
		if name != "" {
			params = append(params, Param{Name: name})
		}
	}

	tokens, ok := deriveTokens(core)
	if ok {
		named, positional := false, false
		for _, tok := range tokens {
			named = named || tok.Kind == TokenNamed
			positional = positional || tok.Kind == TokenPositional
		}
		// Reversal cannot disambiguate patterns that mix named and
		// positional slots.
		ok = !(named && positional)
	}

	return &Pattern{
		core:         core,
		re:           re,
		params:       params,
		tokens:       tokens,
		reversible:   ok,
		nonCapturing: strings.Count(core, "(?:"),
	}
}

func mustCompileCore(core string) *regexp.Regexp {
	re, err := regexp.Compile("^(?:" + core + ")$")
	if err != nil {
		panic(fmt.Sprintf("route: invalid pattern %q: %v", core, err))
	}
	return re
}

func (p *Pattern) isEntry() {}

// SetName assigns the reversible name for this pattern and returns it for
// chaining. Patterns without a name are dropped during tree construction.
func (p *Pattern) SetName(name string) *Pattern {
	p.name = name
	return p
}

// Default declares a default argument value applied during reversal when
// the caller does not supply one. Returns the pattern for chaining.
func (p *Pattern) Default(key string, value any) *Pattern {
	if p.defaults == nil {
		p.defaults = make(map[string]any)
	}
	p.defaults[key] = value
	return p
}

// Name returns the pattern's reversible name (empty if unset).
func (p *Pattern) Name() string {
	return p.name
}

// Core returns the pattern's regex source with anchors stripped.
func (p *Pattern) Core() string {
	return p.core
}

// Regexp returns the compiled, fully anchored matcher.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// Params returns the declared parameters in order of appearance.
func (p *Pattern) Params() []Param {
	return p.params
}

// Defaults returns a copy of the declared default argument values.
func (p *Pattern) Defaults() map[string]any {
	if len(p.defaults) == 0 {
		return nil
	}
	out := make(map[string]any, len(p.defaults))
	maps.Copy(out, p.defaults)
	return out
}

// NumGroups returns the total number of capture groups in the matcher.
func (p *Pattern) NumGroups() int {
	return p.re.NumSubexp()
}

// GroupNames returns capture group names indexed by group number; index 0
// and unnamed groups are empty strings.
func (p *Pattern) GroupNames() []string {
	return p.re.SubexpNames()
}

// NonCapturing returns the number of non-capturing groups in the source.
func (p *Pattern) NonCapturing() int {
	return p.nonCapturing
}

// ReverseTokens returns the pattern's derived reversal token list, or
// ok=false when a concrete path cannot be synthesized from the source (the
// pattern uses regex constructs with no literal expansion, or mixes named
// and positional slots).
func (p *Pattern) ReverseTokens() ([]Token, bool) {
	return p.tokens, p.reversible
}

// parsePath translates converter syntax into a regex core, a reversal token
// list, and the ordered parameter set. Panics on malformed input.
func parsePath(path string) (string, []Token, []Param) {
	var (
		core   strings.Builder
		tokens []Token
		params []Param
	)

	rest := path
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '>')
		if closing < 0 {
			panic(fmt.Sprintf("route: unterminated parameter in path %q", path))
		}
		closing += open

		if lit := rest[:open]; lit != "" {
			core.WriteString(regexp.QuoteMeta(lit))
			tokens = append(tokens, Token{Kind: TokenLiteral, Lit: lit})
		}

		spec := rest[open+1 : closing]
		convName, name := "str", spec
		if idx := strings.IndexByte(spec, ':'); idx >= 0 {
			convName, name = spec[:idx], spec[idx+1:]
		}
		if !paramName.MatchString(name) {
			panic(fmt.Sprintf("route: invalid parameter name %q in path %q", name, path))
		}
		conv, ok := LookupConverter(convName)
		if !ok {
			panic(fmt.Sprintf("route: unknown converter %q in path %q", convName, path))
		}

		fmt.Fprintf(&core, "(?P<%s>%s)", name, conv.Pattern())
		tokens = append(tokens, Token{Kind: TokenNamed, Param: name})
		params = append(params, Param{Name: name, Converter: conv})

		rest = rest[closing+1:]
	}

	if rest != "" {
		core.WriteString(regexp.QuoteMeta(rest))
		tokens = append(tokens, Token{Kind: TokenLiteral, Lit: rest})
	}

	return core.String(), tokens, params
}

// deriveTokens builds a reversal token list from a regex core by expanding
// literal text and turning capture groups into slots. Returns ok=false for
// constructs with no unique literal expansion (classes, alternation,
// quantifiers, lookarounds outside of capture groups).
func deriveTokens(core string) ([]Token, bool) {
	tokens, _, ok := deriveTokensAt(core, 0)
	return tokens, ok
}

func deriveTokensAt(core string, pos int) ([]Token, int, bool) {
	var (
		tokens []Token
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Lit: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(core) {
		switch c := core[i]; c {
		case '\\':
			if i+1 >= len(core) {
				return nil, pos, false
			}
			next := core[i+1]
			if isWordByte(next) {
				// Class escapes like \d have no literal expansion.
				return nil, pos, false
			}
			lit.WriteByte(next)
			i += 2
		case '(':
			end := matchingParen(core, i)
			if end < 0 {
				return nil, pos, false
			}
			inner := core[i+1 : end]
			switch {
			case strings.HasPrefix(inner, "?P<"):
				gt := strings.IndexByte(inner, '>')
				if gt < 0 {
					return nil, pos, false
				}
				flush()
				tokens = append(tokens, Token{Kind: TokenNamed, Param: inner[3:gt]})
			case strings.HasPrefix(inner, "?:"):
				sub, next, ok := deriveTokensAt(inner[2:], pos)
				if !ok {
					return nil, pos, false
				}
				flush()
				tokens = append(tokens, sub...)
				pos = next
			case strings.HasPrefix(inner, "?"):
				return nil, pos, false
			default:
				flush()
				tokens = append(tokens, Token{Kind: TokenPositional, Pos: pos})
				pos++
			}
			if end+1 < len(core) && isQuantifierByte(core[end+1]) {
				return nil, pos, false
			}
			i = end + 1
		case '[', ']', '|', '.', '*', '+', '?', '{', '}', ')':
			return nil, pos, false
		default:
			lit.WriteByte(c)
			i++
		}
	}

	flush()
	return tokens, pos, true
}

// matchingParen returns the index of the parenthesis closing the one at
// open, accounting for escapes and character classes, or -1.
func matchingParen(core string, open int) int {
	depth := 0
	for i := open; i < len(core); i++ {
		switch core[i] {
		case '\\':
			i++
		case '[':
			for i++; i < len(core) && core[i] != ']'; i++ {
				if core[i] == '\\' {
					i++
				}
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isQuantifierByte(b byte) bool {
	return b == '*' || b == '+' || b == '?' || b == '{'
}
