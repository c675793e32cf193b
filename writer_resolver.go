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

// Writer hook identifiers accepted by WithOverride in addition to
// qualified path names. An override bound to a hook replaces the
// corresponding resolver class member; {{.DefaultImpl}} interpolates the
// stock implementation.
const (
	HookConstructor = "constructor"
	HookMatch       = "match"
	HookReverse     = "reverse"
)

// resolverWriter renders the route tree as a resolver class exposing a
// reverse(qname, options) method modeled on server-side URL reversal. The
// class binds an optional namespace prefix at construction and supports
// query parameters through options.query.
type resolverWriter struct {
	writerBase
	className      string
	export         bool
	legacyDefaults bool
}

func newResolverWriter(e *Emitter, overrides map[string]*Override, className string, export, raiseOnNotFound, legacyDefaults bool) *resolverWriter {
	return &resolverWriter{
		writerBase:     writerBase{e: e, overrides: overrides, raiseOnNotFound: raiseOnNotFound},
		className:      className,
		export:         export,
		legacyDefaults: legacyDefaults,
	}
}

func (w *resolverWriter) Begin() {
	w.classDoc()
	decl := ""
	if w.export {
		decl = "export "
	}
	w.e.linef("%sclass %s {", decl, w.className)
	w.e.in()
	w.e.line("")
	w.member(HookConstructor, w.constructor)
	w.e.line("")
	w.member(HookMatch, w.match)
	w.e.line("")
	w.member(HookReverse, w.reverse)
	w.e.line("")
	w.e.line("urls = {")
	w.e.in()
}

func (w *resolverWriter) End() error {
	w.e.out()
	w.e.line("};")
	if err := w.flushOverrides(); err != nil {
		return err
	}
	w.e.out()
	w.e.line("}")
	return nil
}

// member emits one class member, routing through a registered hook
// override when present.
func (w *resolverWriter) member(hook string, impl func()) {
	ov, ok := w.takeOverride(hook)
	if !ok {
		impl()
		return
	}
	captured := w.e.capture(impl)
	rendered, err := ov.render(OverrideContext{
		QName:       hook,
		ClassName:   w.className,
		DefaultImpl: captured,
	})
	if err != nil {
		// Surface the failure in the artifact rather than aborting the
		// whole generation for a cosmetic hook.
		w.e.linef("/* override %s failed: %s */", hook, err)
		w.e.raw(captured)
		return
	}
	w.e.raw(rendered)
}

func (w *resolverWriter) classDoc() {
	w.e.line("/**")
	w.e.line(" * A url resolver class that reverses named routes the way the")
	w.e.line(" * server does, with a few caveats:")
	w.e.line(" *")
	w.e.line(" *  - Server-side type coercion is not available, so care should be")
	w.e.line(" *      taken to pass arguments in the expected string format.")
	w.e.line(" *  - The reverse function also supports a query option to include")
	w.e.line(" *      url query parameters in the reversed url.")
	w.e.line(" *")
	w.e.line(" * @class")
	w.e.line(" */")
}

func (w *resolverWriter) constructor() {
	w.e.line("/**")
	w.e.line(" * Instantiate this url resolver.")
	w.e.line(" *")
	w.e.line(" * @param {Object} options - The options object.")
	w.e.line(" * @param {string} options.namespace - When provided, namespace will")
	w.e.line(" *     prefix all reversed paths with the given namespace.")
	w.e.line(" */")
	w.e.line("constructor(options=null) {")
	w.e.in()
	w.e.line("this.options = options || {};")
	w.e.line(`if (this.options.hasOwnProperty("namespace")) {`)
	w.e.in()
	w.e.line("this.namespace = this.options.namespace;")
	w.e.line(`if (!this.namespace.endsWith(":")) {`)
	w.e.in()
	w.e.line(`this.namespace += ":";`)
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("} else {")
	w.e.in()
	w.e.line(`this.namespace = "";`)
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("}")
}

func (w *resolverWriter) match() {
	w.e.line("/**")
	w.e.line(" * Given a set of args and kwargs and an expected set of arguments and")
	w.e.line(" * a default mapping, return true if the inputs work for the given set.")
	w.e.line(" *")
	w.e.line(" * @param {Object} kwargs - The object holding the reversal named")
	w.e.line(" *     arguments.")
	w.e.line(" * @param {string[]} args - The array holding the positional reversal")
	w.e.line(" *     arguments.")
	w.e.line(" * @param {string[]} expected - An array of expected arguments.")
	w.e.line(" * @param {Object.<string, string>} defaults - An object mapping")
	w.e.line(" *     default arguments to their values.")
	w.e.line(" */")
	w.e.line("#match(kwargs, args, expected, defaults={}) {")
	w.e.in()
	w.e.line("if (defaults) {")
	w.e.in()
	w.e.line("kwargs = Object.assign({}, kwargs);")
	w.e.line("for (const [key, val] of Object.entries(defaults)) {")
	w.e.in()
	w.e.line("if (kwargs.hasOwnProperty(key)) {")
	w.e.in()
	if w.legacyDefaults {
		w.e.line("if (kwargs[key] !== val) { return false; }")
	} else {
		w.e.line("if (kwargs[key] !== val && kwargs[key].toString() !== val.toString() && !expected.includes(key)) { return false; }")
	}
	w.e.line("if (!expected.includes(key)) { delete kwargs[key]; }")
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("}")
	w.e.line("if (Array.isArray(expected)) {")
	w.e.in()
	w.e.line("return Object.keys(kwargs).length === expected.length && expected.every(value => kwargs.hasOwnProperty(value));")
	w.e.out()
	w.e.line("} else if (expected) {")
	w.e.in()
	w.e.line("return args.length === expected;")
	w.e.out()
	w.e.line("} else {")
	w.e.in()
	w.e.line("return Object.keys(kwargs).length === 0 && args.length === 0;")
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("}")
}

func (w *resolverWriter) reverse() {
	w.e.line("/**")
	w.e.line(" * Reverse a named url. Namespaces are supported using `:` as a")
	w.e.line(" * delimiter, and an additional option adds URL query parameters.")
	w.e.line(" *")
	w.e.line(" * @param {string} qname - The name of the url to reverse.")
	w.e.line(" * @param {Object} options - The options object.")
	w.e.line(" * @param {string} options.kwargs - The object holding the reversal")
	w.e.line(" *   named arguments.")
	w.e.line(" * @param {string[]} options.args - The array holding the reversal")
	w.e.line(" *   positional arguments.")
	w.e.line(" * @param {Object.<string, string|string[]>} options.query - URL query")
	w.e.line(" *   parameters to add to the end of the reversed url.")
	w.e.line(" */")
	w.e.line("reverse(qname, options={}) {")
	w.e.in()
	w.e.line("if (this.namespace) {")
	w.e.in()
	w.e.line("qname = `${this.namespace}${qname.replace(this.namespace, \"\")}`;")
	w.e.out()
	w.e.line("}")
	w.e.line("const kwargs = options.kwargs || {};")
	w.e.line("const args = options.args || [];")
	w.e.line("const query = options.query || {};")
	w.e.line("let url = this.urls;")
	w.e.line("for (const ns of qname.split(':')) {")
	w.e.in()
	w.e.line("if (ns && url) { url = url.hasOwnProperty(ns) ? url[ns] : null; }")
	w.e.out()
	w.e.line("}")
	w.e.line("if (url) {")
	w.e.in()
	w.e.line("let pth = url(kwargs, args);")
	w.e.line(`if (typeof pth === "string") {`)
	w.e.in()
	w.e.line("if (Object.keys(query).length !== 0) {")
	w.e.in()
	w.e.line("const params = new URLSearchParams();")
	w.e.line("for (const [key, value] of Object.entries(query)) {")
	w.e.in()
	w.e.line("if (value === null || value === '') continue;")
	w.e.line("if (Array.isArray(value)) value.forEach(element => params.append(key, element));")
	w.e.line("else params.append(key, value);")
	w.e.out()
	w.e.line("}")
	w.e.line("const qryStr = params.toString();")
	w.e.line("if (qryStr) return `${pth.replace(/\\/+$/, '')}?${qryStr}`;")
	w.e.out()
	w.e.line("}")
	w.e.line("return pth;")
	w.e.out()
	w.e.line("}")
	w.e.out()
	w.e.line("}")
	if w.raiseOnNotFound {
		w.e.line("throw new TypeError(`No reversal available for parameters at path: ${qname}`);")
	}
	w.e.out()
	w.e.line("}")
}

func (w *resolverWriter) EnterNamespace(name string) {
	w.e.linef(`"%s": {`, name)
	w.e.in()
}

func (w *resolverWriter) ExitNamespace(string) {
	w.e.out()
	w.e.line("},")
}

func (w *resolverWriter) EnterGroup(qname string) {
	w.e.linef(`"%s": (kwargs={}, args=[]) => {`, lastQNameSegment(qname))
	w.e.in()
}

func (w *resolverWriter) ExitGroup(string) {
	w.e.out()
	w.e.line("},")
}

func (w *resolverWriter) VisitTemplate(t *Template) {
	params := t.Params()
	defaults := t.Defaults()
	switch {
	case t.IsLiteral():
		if len(defaults) > 0 {
			w.e.linef(`if (this.#match(kwargs, args, [], %s)) { return "/%s"; }`, jsObject(defaults), literalText(t))
		} else {
			w.e.linef(`if (this.#match(kwargs, args)) { return "/%s"; }`, literalText(t))
		}
	case len(params) == 0:
		w.e.linef("if (this.#match(kwargs, args, %d)) { return `/%s`; }", t.NumArgs(), templateLiteral(t))
	default:
		if len(defaults) > 0 {
			w.e.linef("if (this.#match(kwargs, args, %s, %s)) { return `/%s`; }",
				jsNameArray(params), jsObject(defaults), templateLiteral(t))
		} else {
			w.e.linef("if (this.#match(kwargs, args, %s)) { return `/%s`; }",
				jsNameArray(params), templateLiteral(t))
		}
	}
}

func (w *resolverWriter) Comment(text string) {
	w.e.linef("/* %s */", text)
}
