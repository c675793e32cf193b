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
)

// Emitter accumulates generated script text with indentation tracking.
// Writers emit one logical line at a time; the emitter applies the
// configured indent string per nesting level.
type Emitter struct {
	buf    *strings.Builder
	indent string
	level  int
}

func newEmitter(indent string) *Emitter {
	return &Emitter{buf: &strings.Builder{}, indent: indent}
}

func (e *Emitter) line(s string) {
	for range e.level {
		e.buf.WriteString(e.indent)
	}
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *Emitter) linef(format string, args ...any) {
	e.line(fmt.Sprintf(format, args...))
}

// raw appends pre-rendered text verbatim (plus a trailing newline if
// missing). Used for override output, whose lines carry their own
// indentation.
func (e *Emitter) raw(s string) {
	if s == "" {
		return
	}
	e.buf.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		e.buf.WriteByte('\n')
	}
}

func (e *Emitter) in() {
	e.level++
}

func (e *Emitter) out() {
	if e.level > 0 {
		e.level--
	}
}

// capture runs fn and returns the text it emitted instead of appending it
// to the output. Indentation state carries through, so captured lines are
// indented exactly as they would have been in place.
func (e *Emitter) capture(fn func()) string {
	prev := e.buf
	e.buf = &strings.Builder{}
	fn()
	captured := e.buf.String()
	e.buf = prev
	return captured
}

// String returns the accumulated output.
func (e *Emitter) String() string {
	return e.buf.String()
}
