// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

import "strconv"

// A frameKind distinguishes the two kinds of open container.
type frameKind byte

const (
	objectFrame frameKind = iota // an object: "{" ... "}"
	arrayFrame                   // an array: "[" ... "]"
)

// A frame records one open container on the path stack.
type frame struct {
	kind    frameKind
	path    string // the path of the container itself
	key     string // object: unescaped key of the member in progress
	haveKey bool   // object: whether key is set
	index   int    // array: index of the element in progress
}

// A pathTracker maintains the stack of open containers and renders the
// logical path of each parsing milestone. The depth of the stack equals the
// nesting depth of the input; an empty stack means no value is open.
//
// Paths are rooted at the literal "root". An object member appends "." and
// the unescaped key text, and an array element appends a 0-based bracketed
// index, composing left to right: root.scores[1][0], root.scores[2].final.
type pathTracker struct {
	stk []frame
}

func (p *pathTracker) depth() int  { return len(p.stk) }
func (p *pathTracker) top() *frame { return &p.stk[len(p.stk)-1] }

// valuePath returns the path of the value at the current position: the
// innermost container's path extended by the pending member key or element
// index, or "root" at top level.
func (p *pathTracker) valuePath() string {
	if len(p.stk) == 0 {
		return "root"
	}
	f := p.top()
	if f.kind == arrayFrame {
		return f.path + "[" + strconv.Itoa(f.index) + "]"
	}
	if !f.haveKey {
		return f.path // value with no preceding key; input is malformed
	}
	return f.path + "." + f.key
}

// containerPath returns the path of the innermost open container, or "root"
// at top level.
func (p *pathTracker) containerPath() string {
	if len(p.stk) == 0 {
		return "root"
	}
	return p.top().path
}

// enter pushes a frame for a container opening at the current value
// position, and returns the container's path.
func (p *pathTracker) enter(kind frameKind) string {
	path := p.valuePath()
	p.stk = append(p.stk, frame{kind: kind, path: path})
	return path
}

// exit pops the innermost container and returns its path.
func (p *pathTracker) exit() string {
	if len(p.stk) == 0 {
		return "root" // unbalanced close; input is malformed
	}
	path := p.top().path
	p.stk = p.stk[:len(p.stk)-1]
	return path
}

// setKey records the unescaped member key for the next value in the
// innermost object.
func (p *pathTracker) setKey(key string) {
	if len(p.stk) != 0 && p.top().kind == objectFrame {
		f := p.top()
		f.key, f.haveKey = key, true
	}
}

// keyExpected reports whether the current position is an object member key
// position: directly inside an object with no key pending.
func (p *pathTracker) keyExpected() bool {
	return len(p.stk) != 0 && p.top().kind == objectFrame && !p.top().haveKey
}

// endValue marks the value at the current position complete, advancing the
// element index of an array frame or clearing the member key of an object
// frame.
func (p *pathTracker) endValue() {
	if len(p.stk) == 0 {
		return
	}
	if f := p.top(); f.kind == arrayFrame {
		f.index++
	} else {
		f.haveKey = false
	}
}

func (p *pathTracker) reset() { p.stk = p.stk[:0] }
