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
	"sort"

	"rivaas.dev/urljs/route"
)

// Visitor receives traversal events for a normalized route tree and emits
// the corresponding script text. The generator drives one visitor per
// Generate call; the two bundled implementations produce the flat object
// and the resolver class artifacts.
type Visitor interface {
	// Begin is called once before traversal starts.
	Begin()

	// End is called once after the whole tree has been visited. Leftover
	// overrides are flushed here so unmatched registrations still land in
	// the output.
	End() error

	// EnterNamespace and ExitNamespace bracket a named child namespace.
	EnterNamespace(name string)
	ExitNamespace(name string)

	// EnterGroup and ExitGroup bracket the reversal function for one
	// qualified path name.
	EnterGroup(qname string)
	ExitGroup(qname string)

	// VisitTemplate emits one reversal clause for a successfully reversed
	// pattern.
	VisitTemplate(t *Template)

	// Comment emits a script comment for a pattern that was skipped.
	Comment(text string)

	// Emitter exposes the visitor's output buffer to the traversal driver
	// for override capture.
	Emitter() *Emitter

	// takeOverride consumes the override registered for name, if any.
	takeOverride(name string) (*Override, bool)
}

// writerBase carries the state shared by the bundled visitors.
type writerBase struct {
	e               *Emitter
	overrides       map[string]*Override
	raiseOnNotFound bool
}

func (w *writerBase) Emitter() *Emitter {
	return w.e
}

func (w *writerBase) takeOverride(name string) (*Override, bool) {
	ov, ok := w.overrides[name]
	if ok {
		delete(w.overrides, name)
	}
	return ov, ok
}

// flushOverrides renders every override that was never matched during
// traversal, in deterministic name order.
func (w *writerBase) flushOverrides() error {
	if len(w.overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(w.overrides))
	for name := range w.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ov := w.overrides[name]
		delete(w.overrides, name)
		rendered, err := ov.render(OverrideContext{QName: name})
		if err != nil {
			return err
		}
		w.e.raw(rendered)
	}
	return nil
}

// emitTree walks the route tree depth first. Path groups at each level are
// visited before child namespaces, in registration order; patterns within a
// group are visited most recent first, matching the precedence the oracle
// applies when several patterns share a name.
func (g *run) emitTree(v Visitor, tree *route.Tree) error {
	v.Begin()
	if err := g.emitBranch(v, tree, "", nil); err != nil {
		return err
	}
	return v.End()
}

func (g *run) emitBranch(v Visitor, node *route.Tree, qname string, prefixes []*route.Pattern) error {
	for _, lg := range node.Groups() {
		gq := route.JoinQName(qname, lg.Name())
		if err := g.emitGroup(v, node, lg, gq, prefixes); err != nil {
			return err
		}
	}
	for _, child := range node.Children() {
		childQ := route.JoinQName(qname, child.Namespace())
		childPrefixes := prefixes
		if p := child.PrefixPattern(); p != nil {
			childPrefixes = append(append([]*route.Pattern{}, prefixes...), p)
		}
		v.EnterNamespace(child.Namespace())
		if err := g.emitBranch(v, child, childQ, childPrefixes); err != nil {
			return err
		}
		v.ExitNamespace(child.Namespace())
	}
	return nil
}

func (g *run) emitGroup(v Visitor, node *route.Tree, lg *route.LeafGroup, gq string, prefixes []*route.Pattern) error {
	ov, overridden := v.takeOverride(gq)
	body := func() error {
		v.EnterGroup(gq)
		pats := lg.Patterns()
		for i := len(pats) - 1; i >= 0; i-- {
			if err := g.emitPattern(v, pats[i], gq, node.AppName(), prefixes, len(pats)); err != nil {
				return err
			}
		}
		v.ExitGroup(gq)
		return nil
	}
	if !overridden {
		return body()
	}
	var bodyErr error
	impl := v.Emitter().capture(func() { bodyErr = body() })
	if bodyErr != nil {
		return bodyErr
	}
	rendered, err := ov.render(OverrideContext{
		QName:       gq,
		App:         node.AppName(),
		NumPatterns: len(lg.Patterns()),
		DefaultImpl: impl,
	})
	if err != nil {
		return err
	}
	v.Emitter().raw(rendered)
	return nil
}

func (g *run) emitPattern(v Visitor, pat *route.Pattern, gq, app string, prefixes []*route.Pattern, numPatterns int) error {
	rev, err := g.reversePattern(reverseRequest{
		pattern:     pat,
		qname:       gq,
		app:         app,
		prefixes:    prefixes,
		numPatterns: numPatterns,
	})
	g.observePattern(gq, rev, err)
	if err != nil {
		return err
	}
	if rev.comment != "" {
		v.Comment(rev.comment)
		return nil
	}
	v.VisitTemplate(rev.template)
	return nil
}
