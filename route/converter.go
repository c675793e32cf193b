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
	"regexp"
	"sync"
)

// Converter is a typed path parameter kind. A converter pairs a regex
// fragment that matches valid values with an optional example value usable
// to probe the reversal oracle.
type Converter struct {
	name        string
	pattern     string
	placeholder any
	hasExample  bool
}

// Name returns the converter's registration name (e.g. "int", "slug").
func (c *Converter) Name() string {
	return c.name
}

// Pattern returns the unanchored regex fragment matching valid values.
func (c *Converter) Pattern() string {
	return c.pattern
}

// Placeholder returns the converter's example value, if one was registered.
func (c *Converter) Placeholder() (any, bool) {
	return c.placeholder, c.hasExample
}

var (
	convertersMu sync.RWMutex
	converters   = map[string]*Converter{
		"int":  {name: "int", pattern: `[0-9]+`, placeholder: 0, hasExample: true},
		"str":  {name: "str", pattern: `[^/]+`, placeholder: "a", hasExample: true},
		"slug": {name: "slug", pattern: `[-a-zA-Z0-9_]+`, placeholder: "a", hasExample: true},
		"uuid": {
			name:        "uuid",
			pattern:     `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
			placeholder: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
			hasExample:  true,
		},
		"path": {name: "path", pattern: `.+`, placeholder: "a", hasExample: true},
	}
)

// RegisterConverter registers a custom path converter under the given name.
// The pattern must be a valid unanchored regex fragment; placeholder is an
// optional example value used by the reverser before consulting the
// placeholder registry (pass nil for none).
//
// Registering over an existing name replaces it. Panics on an invalid
// pattern, for early detection during application startup.
func RegisterConverter(name, pattern string, placeholder any) {
	if _, err := regexp.Compile("^(?:" + pattern + ")$"); err != nil {
		panic(fmt.Sprintf("route: invalid converter pattern %q: %v", pattern, err))
	}

	convertersMu.Lock()
	defer convertersMu.Unlock()
	converters[name] = &Converter{
		name:        name,
		pattern:     pattern,
		placeholder: placeholder,
		hasExample:  placeholder != nil,
	}
}

// LookupConverter returns the converter registered under name.
func LookupConverter(name string) (*Converter, bool) {
	convertersMu.RLock()
	defer convertersMu.RUnlock()
	c, ok := converters[name]
	return c, ok
}
