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
	"strings"
	"text/template"
)

// OverrideContext is the data made available to an override template.
// DefaultImpl holds the text the generator would have emitted in the
// override's place, fully rendered and indented, so an override can wrap
// or extend the stock output instead of replacing it.
type OverrideContext struct {
	// QName is the fully qualified path name the override replaces, or a
	// writer hook identifier such as "constructor", "match" or "reverse".
	QName string

	// App is the application label of the enclosing namespace, if any.
	App string

	// NumPatterns is the number of patterns registered under QName.
	NumPatterns int

	// ClassName is the resolver class name when generating with
	// StrategyResolver.
	ClassName string

	// DefaultImpl is the stock implementation text.
	DefaultImpl string
}

// Override is a text/template rendered in place of a generated path
// function or a writer hook. Overrides registered for names that never
// occur in the traversal are rendered with an empty context at the end of
// the output, so custom additions always land in the artifact.
type Override struct {
	name string
	tmpl *template.Template
}

// NewOverride parses text as a text/template keyed to the qualified path
// name or writer hook it replaces.
func NewOverride(name, text string) (*Override, error) {
	if name == "" {
		return nil, fmt.Errorf("override: name must not be empty")
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("override %q: %w", name, err)
	}
	return &Override{name: name, tmpl: tmpl}, nil
}

// Name returns the qualified path name or hook the override is bound to.
func (o *Override) Name() string {
	return o.name
}

func (o *Override) render(ctx OverrideContext) (string, error) {
	var sb strings.Builder
	if err := o.tmpl.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("override %q: %w", o.name, err)
	}
	return sb.String(), nil
}
