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
	"strings"

	"github.com/labstack/echo/v4"

	"rivaas.dev/urljs/route"
)

// EchoNamer derives the reversal name for a registered echo route.
// Returning an empty string drops the route from generation.
type EchoNamer func(route *echo.Route) string

// FromEcho converts the routes registered on an echo instance into route
// entries. Echo's `:param` segments become `<str:param>` captures and a
// trailing `*` becomes a `<path:filepath>` capture. Routes are named by
// namer; pass nil to use echo's own route names, which default to the
// handler function name.
func FromEcho(e *echo.Echo, namer EchoNamer) []route.Entry {
	if namer == nil {
		namer = EchoRouteNamer
	}
	var entries []route.Entry
	seen := map[string]bool{}
	for _, r := range e.Routes() {
		name := namer(r)
		if name == "" {
			continue
		}
		key := name + " " + r.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, route.Path(convertEchoPath(r.Path)).SetName(name))
	}
	return entries
}

// EchoRouteNamer names a route after the trailing segment of its echo
// route name.
func EchoRouteNamer(r *echo.Route) string {
	name := r.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func convertEchoPath(path string) string {
	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, ":"):
			segs[i] = "<str:" + seg[1:] + ">"
		case seg == "*":
			segs[i] = "<path:filepath>"
		case strings.HasPrefix(seg, "*"):
			segs[i] = "<path:" + seg[1:] + ">"
		}
	}
	return strings.Join(segs, "/")
}
