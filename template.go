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
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// Substitution is an interpolation slot in a path template, referencing
// either a named parameter or a positional argument index.
type Substitution struct {
	Name  string // named parameter; empty for positional slots
	Index int    // positional index; -1 for named slots
}

// TemplateToken is one element of a template's token list: either a literal
// text fragment (Sub == nil) or a substitution slot.
type TemplateToken struct {
	Lit string
	Sub *Substitution
}

// Template is the parameterized path discovered for one route pattern:
// alternating literal and substitution tokens, the named parameter list
// (empty for positional patterns), and any default argument values.
type Template struct {
	tokens   []TemplateToken
	params   []string
	nargs    int
	defaults map[string]any
}

func literalTemplate(path string) *Template {
	return &Template{tokens: []TemplateToken{{Lit: path}}}
}

// Tokens returns the template's token list.
func (t *Template) Tokens() []TemplateToken {
	return t.tokens
}

// Params returns the named parameter names, empty for positional templates.
func (t *Template) Params() []string {
	return t.params
}

// NumArgs returns the number of positional slots.
func (t *Template) NumArgs() int {
	return t.nargs
}

// Defaults returns a copy of the default argument values, or nil.
func (t *Template) Defaults() map[string]any {
	if len(t.defaults) == 0 {
		return nil
	}
	out := make(map[string]any, len(t.defaults))
	maps.Copy(out, t.defaults)
	return out
}

// IsLiteral reports whether the template has no substitution slots.
func (t *Template) IsLiteral() bool {
	for _, tok := range t.tokens {
		if tok.Sub != nil {
			return false
		}
	}
	return true
}

// Render realizes the template into a concrete path. Named slots are filled
// from kwargs, falling back to the template's defaults; positional slots
// from args. Values are stringified the same way the bundled oracle does,
// so rendering with the values discovered during generation reproduces the
// oracle's output byte for byte.
func (t *Template) Render(kwargs map[string]any, args []any) (string, error) {
	var b strings.Builder
	b.WriteByte('/')

	for _, tok := range t.tokens {
		switch {
		case tok.Sub == nil:
			b.WriteString(tok.Lit)
		case tok.Sub.Name != "":
			v, ok := kwargs[tok.Sub.Name]
			if !ok {
				v, ok = t.defaults[tok.Sub.Name]
			}
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingArgument, tok.Sub.Name)
			}
			b.WriteString(cast.ToString(v))
		default:
			if tok.Sub.Index >= len(args) {
				return "", fmt.Errorf("%w: positional argument %d", ErrMissingArgument, tok.Sub.Index)
			}
			b.WriteString(cast.ToString(args[tok.Sub.Index]))
		}
	}

	return b.String(), nil
}
