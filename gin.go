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

	"github.com/gin-gonic/gin"

	"rivaas.dev/urljs/route"
)

// GinNamer derives the reversal name for a registered gin route. Returning
// an empty string drops the route from generation.
type GinNamer func(route gin.RouteInfo) string

// FromGin converts the routes registered on a gin engine into route
// entries. Gin's `:param` segments become `<str:param>` captures and
// `*param` segments become `<path:param>` captures. Routes are named by
// namer; pass nil to name routes after the last segment of their handler
// function.
func FromGin(engine *gin.Engine, namer GinNamer) []route.Entry {
	if namer == nil {
		namer = GinHandlerNamer
	}
	var entries []route.Entry
	seen := map[string]bool{}
	for _, info := range engine.Routes() {
		name := namer(info)
		if name == "" {
			continue
		}
		// The same handler registered for several methods reverses to the
		// same path; keep the first occurrence.
		key := name + " " + info.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, route.Path(convertGinPath(info.Path)).SetName(name))
	}
	return entries
}

// GinHandlerNamer names a route after the trailing segment of its handler
// function name, e.g. "main.listArticles" becomes "listArticles".
func GinHandlerNamer(info gin.RouteInfo) string {
	name := info.Handler
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func convertGinPath(path string) string {
	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, ":"):
			segs[i] = "<str:" + seg[1:] + ">"
		case strings.HasPrefix(seg, "*"):
			segs[i] = "<path:" + seg[1:] + ">"
		}
	}
	return strings.Join(segs, "/")
}
