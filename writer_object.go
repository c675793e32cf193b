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
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// objectWriter renders the route tree as a nested plain-object literal.
// Each qualified path name maps to an arrow function taking an options
// object and a positional argument array; namespaces become nested
// objects. Default arguments are not consulted by this strategy; use
// StrategyResolver when patterns carry defaults.
type objectWriter struct {
	writerBase
	variable string
}

func newObjectWriter(e *Emitter, overrides map[string]*Override, variable string, raiseOnNotFound bool) *objectWriter {
	return &objectWriter{
		writerBase: writerBase{e: e, overrides: overrides, raiseOnNotFound: raiseOnNotFound},
		variable:   variable,
	}
}

func (w *objectWriter) Begin() {
	if w.variable != "" {
		w.e.linef("const %s = {", w.variable)
	}
	w.e.in()
}

func (w *objectWriter) End() error {
	if err := w.flushOverrides(); err != nil {
		return err
	}
	w.e.out()
	if w.variable != "" {
		w.e.line("};")
	}
	return nil
}

func (w *objectWriter) EnterNamespace(name string) {
	w.e.linef(`"%s": {`, name)
	w.e.in()
}

func (w *objectWriter) ExitNamespace(string) {
	w.e.out()
	w.e.line("},")
}

func (w *objectWriter) EnterGroup(qname string) {
	w.e.linef(`"%s": (options={}, args=[]) => {`, lastQNameSegment(qname))
	w.e.in()
	w.e.line("const kwargs = ((options.kwargs || null) || options) || {};")
	w.e.line("args = ((options.args || null) || args) || [];")
}

func (w *objectWriter) ExitGroup(qname string) {
	if w.raiseOnNotFound {
		w.e.linef(`throw new TypeError("No reversal available for parameters at path: %s");`, qname)
	}
	w.e.out()
	w.e.line("},")
}

func (w *objectWriter) VisitTemplate(t *Template) {
	params := t.Params()
	switch {
	case t.IsLiteral():
		w.e.line("if (Object.keys(kwargs).length === 0 && args.length === 0)")
		w.e.in()
		w.e.linef(`return "/%s";`, literalText(t))
		w.e.out()
	case len(params) == 0:
		w.e.linef("if (args.length === %d)", t.NumArgs())
		w.e.in()
		w.e.linef("return `/%s`;", templateLiteral(t))
		w.e.out()
	default:
		w.e.linef("if (Object.keys(kwargs).length === %d && %s.every(value => kwargs.hasOwnProperty(value)))",
			len(params), jsNameArray(params))
		w.e.in()
		w.e.linef("return `/%s`;", templateLiteral(t))
		w.e.out()
	}
}

func (w *objectWriter) Comment(text string) {
	w.e.linef("/* %s */", text)
}

// templateLiteral interpolates a template's tokens into the body of a JS
// template literal. The leading slash is added by the caller.
func templateLiteral(t *Template) string {
	var sb strings.Builder
	for _, tok := range t.Tokens() {
		if tok.Sub == nil {
			sb.WriteString(escapeTemplateLiteral(tok.Lit))
			continue
		}
		if tok.Sub.Name != "" {
			fmt.Fprintf(&sb, `${kwargs["%s"]}`, tok.Sub.Name)
		} else {
			fmt.Fprintf(&sb, "${args[%d]}", tok.Sub.Index)
		}
	}
	return sb.String()
}

func literalText(t *Template) string {
	var sb strings.Builder
	for _, tok := range t.Tokens() {
		sb.WriteString(tok.Lit)
	}
	return sb.String()
}

func escapeTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

// jsNameArray renders parameter names as a JS array of single-quoted
// strings, e.g. ['year','month'].
func jsNameArray(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// jsObject renders a defaults map as a JS object literal in deterministic
// key order. Values that do not marshal to JSON fall back to their string
// form.
func jsObject(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf(`"%s": %s`, k, jsValue(m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func jsValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(cast.ToString(v))
	}
	return string(b)
}

func lastQNameSegment(qname string) string {
	if i := strings.LastIndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
