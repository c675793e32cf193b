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

// Package placeholders stores example values used to probe the reversal
// oracle. Values are registered at configuration time against a converter
// kind, a variable name (optionally scoped to an owning application), or a
// url name's positional argument list, and resolved most specific first.
package placeholders

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"rivaas.dev/urljs/route"
)

// ErrPlaceholderNotFound indicates that no candidate values are registered
// for a lookup. Generation aborts on this error; remediation is registering
// placeholders for the named parameter or url.
var ErrPlaceholderNotFound = errors.New("no placeholders registered")

// commonPlaceholders are fallback values appended to every resolution, in
// try order. Deliberately short: for a url with p parameters resolution is
// O(n^p) over the candidate count n.
var commonPlaceholders = []any{0, "a", 1, "A", "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"}

// Registry holds placeholder values for one or more generation runs. The
// zero value is not usable; create instances with NewRegistry. A Registry
// is populated at configuration time and read during generation; writes are
// guarded for convenience but are not expected to race with a run.
type Registry struct {
	mu         sync.RWMutex
	converters map[string][]any
	appVars    map[string]map[string][]any
	vars       map[string][]any
	appUnnamed map[string]map[string][][]any
	unnamed    map[string][][]any
	common     []any
}

// Option configures a Registry.
type Option func(*Registry)

// WithoutCommonPlaceholders disables the built-in fallback values, making
// resolution fail for any parameter with no explicit registration. Useful
// for strict configurations and for tests exercising lookup failures.
func WithoutCommonPlaceholders() Option {
	return func(r *Registry) {
		r.common = nil
	}
}

// NewRegistry creates an empty registry seeded with the common fallback
// values.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		converters: make(map[string][]any),
		appVars:    make(map[string]map[string][]any),
		vars:       make(map[string][]any),
		appUnnamed: make(map[string]map[string][][]any),
		unnamed:    make(map[string][][]any),
		common:     slices.Clone(commonPlaceholders),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the process-wide registry used when a generator is not given
// an explicit one. Tests should prefer isolated NewRegistry instances.
var Default = NewRegistry()

// RegisterConverter registers a candidate value for every parameter using
// the named converter kind. Duplicate values are ignored.
func (r *Registry) RegisterConverter(converter string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[converter] = appendUnique(r.converters[converter], value)
}

// RegisterVariable registers a candidate value for a named parameter,
// optionally scoped to an owning application. App-scoped values are tried
// before global ones. Duplicate values are ignored.
func (r *Registry) RegisterVariable(name string, value any, app ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vars[name] = appendUnique(r.vars[name], value)
	for _, a := range app {
		if a == "" {
			continue
		}
		byVar := r.appVars[a]
		if byVar == nil {
			byVar = make(map[string][]any)
			r.appVars[a] = byVar
		}
		byVar[name] = appendUnique(byVar[name], value)
	}
}

// RegisterUnnamed registers an ordered positional candidate list for a url
// name, optionally scoped to an owning application. The list indices
// correspond to argument order. Duplicate lists are ignored.
func (r *Registry) RegisterUnnamed(urlName string, values []any, app ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unnamed[urlName] = appendUniqueList(r.unnamed[urlName], values)
	for _, a := range app {
		if a == "" {
			continue
		}
		byURL := r.appUnnamed[a]
		if byURL == nil {
			byURL = make(map[string][][]any)
			r.appUnnamed[a] = byURL
		}
		byURL[urlName] = appendUniqueList(byURL[urlName], values)
	}
}

// ResolveNamed returns candidate values for a named parameter, most
// specific first: the converter's own example and converter-level
// registrations, then (app, name) registrations, then name-only
// registrations, then the common fallbacks. conv may be nil for untyped
// parameters.
func (r *Registry) ResolveNamed(name, app string, conv *route.Converter) ([]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []any
	if conv != nil {
		if example, ok := conv.Placeholder(); ok {
			out = append(out, example)
		}
		out = append(out, r.converters[conv.Name()]...)
	}
	if app != "" {
		out = append(out, r.appVars[app][name]...)
	}
	out = append(out, r.vars[name]...)
	for _, v := range r.common {
		out = appendUnique(out, v)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w for parameter %q (app %q)", ErrPlaceholderNotFound, name, app)
	}
	return out, nil
}

// ResolveUnnamed returns per-argument candidate lists for a url taking
// nargs positional arguments: registered lists of matching arity for the
// (app, urlName) scope first, then the global urlName scope, then the
// common fallbacks appended per argument.
func (r *Registry) ResolveUnnamed(urlName string, nargs int, app string) ([][]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perArg := make([][]any, nargs)
	add := func(lists [][]any) {
		for _, list := range lists {
			if len(list) != nargs {
				continue
			}
			for i, v := range list {
				perArg[i] = appendUnique(perArg[i], v)
			}
		}
	}
	if app != "" {
		add(r.appUnnamed[app][urlName])
	}
	add(r.unnamed[urlName])

	for i := range perArg {
		for _, v := range r.common {
			perArg[i] = appendUnique(perArg[i], v)
		}
		if len(perArg[i]) == 0 {
			return nil, fmt.Errorf("%w for url %q argument %d (app %q)",
				ErrPlaceholderNotFound, urlName, i, app)
		}
	}
	return perArg, nil
}

// Reset drops every registration, restoring the registry to its initial
// state. Intended for test isolation of the Default registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = make(map[string][]any)
	r.appVars = make(map[string]map[string][]any)
	r.vars = make(map[string][]any)
	r.appUnnamed = make(map[string]map[string][][]any)
	r.unnamed = make(map[string][][]any)
}

func appendUnique(dst []any, v any) []any {
	if slices.ContainsFunc(dst, func(existing any) bool {
		return reflect.DeepEqual(existing, v)
	}) {
		return dst
	}
	return append(dst, v)
}

func appendUniqueList(dst [][]any, list []any) [][]any {
	if slices.ContainsFunc(dst, func(existing []any) bool {
		return reflect.DeepEqual(existing, list)
	}) {
		return dst
	}
	return append(dst, slices.Clone(list))
}
