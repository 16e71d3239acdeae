// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package mux routes the fragments of multiple concurrent tool-call
// streams to per-stream jfrag parsers.
//
// A model response may interleave fragments for several tool calls, each
// identified by a tool or stream name. A Mux owns one jfrag.Parser per
// name, creating parsers as new names arrive, so the caller can feed
// fragments in arrival order without tracking stream identity itself.
package mux

import (
	"maps"
	"slices"
	"sync"

	"github.com/creachadair/jfrag"
	"github.com/creachadair/jfrag/upath"
)

// A Mux owns one jfrag.Parser per tool stream. A zero Mux is not ready for
// use; construct one with New. The methods of a Mux are safe for use by
// concurrent goroutines, though fragments of any single stream must still
// arrive in order.
type Mux struct {
	mu      sync.Mutex
	streams map[string]*jfrag.Parser
	watches []watch
}

type watch struct {
	expr upath.Expr
	fn   func(tool string, u jfrag.Update)
}

// New constructs an empty Mux.
func New() *Mux { return &Mux{streams: make(map[string]*jfrag.Parser)} }

// Add routes one fragment to the parser for the named tool stream, creating
// the parser if this is the first fragment for that name. It returns the
// updates the fragment produced, after delivering them to any matching
// watches.
func (m *Mux) Add(tool, fragment string) []jfrag.Update {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.streams[tool]
	if !ok {
		p = jfrag.New(tool)
		m.streams[tool] = p
	}
	return m.deliver(tool, p.AddFragment(fragment))
}

// Close finalizes the named stream (see jfrag.Parser.Close) and returns any
// updates finalization produced. Closing an unknown stream reports nothing.
func (m *Mux) Close(tool string) []jfrag.Update {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.streams[tool]
	if !ok {
		return nil
	}
	return m.deliver(tool, p.Close())
}

func (m *Mux) deliver(tool string, ups []jfrag.Update) []jfrag.Update {
	for _, u := range ups {
		for _, w := range m.watches {
			if w.expr.Match(u.Path) {
				w.fn(tool, u)
			}
		}
	}
	return ups
}

// Watch registers fn to be called for each update whose path matches expr,
// which may contain wildcards, e.g. "root.calls[*].name". Watches apply to
// all streams; fn receives the stream name alongside each update. It is
// called with the Mux lock held, and must not call back into m.
func (m *Mux) Watch(expr string, fn func(tool string, u jfrag.Update)) error {
	e, err := upath.Parse(expr)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watches = append(m.watches, watch{expr: e, fn: fn})
	return nil
}

// Parser returns the parser for the named stream, or nil if no fragment
// has arrived for that name.
func (m *Mux) Parser(tool string) *jfrag.Parser {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streams[tool]
}

// Tools returns the names of all known streams in lexicographic order.
func (m *Mux) Tools() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.streams))
}

// Reset resets the parser for the named stream in place, so the same name
// can carry a new value. Resetting an unknown name has no effect.
func (m *Mux) Reset(tool string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.streams[tool]; ok {
		p.Reset()
	}
}

// Drop discards the parser for the named stream, typically once its value
// is complete and consumed.
func (m *Mux) Drop(tool string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.streams, tool)
}
