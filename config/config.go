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

// Package config loads generator settings from YAML or TOML files, so
// build scripts can keep generation options and placeholder values next
// to the project instead of in code.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"rivaas.dev/urljs"
	"rivaas.dev/urljs/placeholders"
)

// Settings mirrors the generator's functional options in declarative
// form. Zero values mean "not set" and leave the generator default in
// place; RaiseOnNotFound and VariableName use pointers because their
// empty values are meaningful.
type Settings struct {
	Strategy        string            `mapstructure:"strategy"`
	VariableName    *string           `mapstructure:"variable_name"`
	ClassName       string            `mapstructure:"class_name"`
	Indent          string            `mapstructure:"indent"`
	Export          bool              `mapstructure:"export"`
	RaiseOnNotFound *bool             `mapstructure:"raise_on_not_found"`
	LegacyDefaults  bool              `mapstructure:"legacy_defaults"`
	ReversalLimit   int               `mapstructure:"reversal_limit"`
	Include         []string          `mapstructure:"include"`
	Exclude         []string          `mapstructure:"exclude"`
	Overrides       map[string]string `mapstructure:"overrides"`

	Placeholders PlaceholderSettings `mapstructure:"placeholders"`
}

// PlaceholderSettings declares placeholder candidates for the reversal
// search, keyed the same way the programmatic registry is.
type PlaceholderSettings struct {
	// DisableCommon drops the built-in fallback candidates.
	DisableCommon bool `mapstructure:"disable_common"`

	// Variables maps parameter names to candidate values.
	Variables map[string]any `mapstructure:"variables"`

	// Apps maps application labels to parameter candidates scoped to
	// that app.
	Apps map[string]map[string]any `mapstructure:"apps"`

	// Unnamed maps url names to ordered positional candidate lists.
	Unnamed map[string][]any `mapstructure:"unnamed"`

	// Converters maps converter names to extra candidate values.
	Converters map[string]any `mapstructure:"converters"`
}

// Load reads and merges the given settings files in order, later files
// overriding earlier ones. The format is detected from the extension
// (.yaml, .yml, .toml).
func Load(paths ...string) (*Settings, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("config: no settings files given")
	}
	merged := map[string]any{}
	for _, path := range paths {
		values, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Map(&merged, values, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: failed to merge %s: %w", path, err)
		}
	}
	return decode(merged)
}

func readFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	values := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
	return values, nil
}

func decode(values map[string]any) (*Settings, error) {
	s := &Settings{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Options converts the settings into generator options. The placeholder
// registry is built separately and included when any placeholder
// settings are present.
func (s *Settings) Options() []urljs.Option {
	var opts []urljs.Option
	if s.Strategy != "" {
		opts = append(opts, urljs.WithStrategy(urljs.Strategy(s.Strategy)))
	}
	if s.VariableName != nil {
		opts = append(opts, urljs.WithVariableName(*s.VariableName))
	}
	if s.ClassName != "" {
		opts = append(opts, urljs.WithClassName(s.ClassName))
	}
	if s.Indent != "" {
		opts = append(opts, urljs.WithIndent(s.Indent))
	}
	if s.Export {
		opts = append(opts, urljs.WithExport())
	}
	if s.RaiseOnNotFound != nil {
		opts = append(opts, urljs.WithRaiseOnNotFound(*s.RaiseOnNotFound))
	}
	if s.LegacyDefaults {
		opts = append(opts, urljs.WithLegacyDefaultMatching())
	}
	if s.ReversalLimit > 0 {
		opts = append(opts, urljs.WithReversalLimit(s.ReversalLimit))
	}
	if len(s.Include) > 0 {
		opts = append(opts, urljs.WithInclude(s.Include...))
	}
	if len(s.Exclude) > 0 {
		opts = append(opts, urljs.WithExclude(s.Exclude...))
	}
	for name, text := range s.Overrides {
		opts = append(opts, urljs.WithOverride(name, text))
	}
	if s.hasPlaceholders() {
		opts = append(opts, urljs.WithRegistry(s.Registry()))
	}
	return opts
}

func (s *Settings) hasPlaceholders() bool {
	p := s.Placeholders
	return p.DisableCommon || len(p.Variables) > 0 || len(p.Apps) > 0 ||
		len(p.Unnamed) > 0 || len(p.Converters) > 0
}

// Registry builds a placeholder registry from the declared candidates.
func (s *Settings) Registry() *placeholders.Registry {
	var regOpts []placeholders.Option
	if s.Placeholders.DisableCommon {
		regOpts = append(regOpts, placeholders.WithoutCommonPlaceholders())
	}
	reg := placeholders.NewRegistry(regOpts...)
	for name, value := range s.Placeholders.Variables {
		reg.RegisterVariable(name, value)
	}
	for app, vars := range s.Placeholders.Apps {
		for name, value := range vars {
			reg.RegisterVariable(name, value, app)
		}
	}
	for urlName, values := range s.Placeholders.Unnamed {
		reg.RegisterUnnamed(urlName, values)
	}
	for converter, value := range s.Placeholders.Converters {
		reg.RegisterConverter(converter, value)
	}
	return reg
}

// Generator is a convenience composing Load and urljs.New.
func Generator(paths ...string) (*urljs.Generator, error) {
	s, err := Load(paths...)
	if err != nil {
		return nil, err
	}
	return urljs.New(s.Options()...)
}
