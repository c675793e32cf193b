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

// Package urljs transpiles a hierarchical route configuration into
// standalone client-side JavaScript that reproduces the server's url
// reversal behavior exactly, without contacting the server.
//
// The generator never re-implements path construction from matcher
// patterns. Instead it probes an authoritative reverse-lookup Oracle with
// registered placeholder values and splices the returned concrete paths
// into parameterized templates, so the emitted JavaScript can never diverge
// from server-side reversal semantics.
//
// A minimal run:
//
//	entries := []route.Entry{
//	    route.Path("detail/<int:id>").SetName("detail"),
//	}
//	gen, err := urljs.New(urljs.WithStrategy(urljs.StrategyResolver))
//	if err != nil {
//	    return err
//	}
//	script, err := gen.Generate(context.Background(), entries)
//
// The emitted script exposes either a flat object of reversal functions
// (StrategyObject) or a resolver class with a reverse(name, options) method
// (StrategyResolver). Both guarantee that a call with the same arguments
// returns the same path the server would produce.
//
// Placeholder values come from a placeholders.Registry; the reversal oracle
// defaults to a bundled implementation over the same configuration but can
// be replaced with any authoritative lookup via WithOracle.
package urljs
