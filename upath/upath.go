// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package upath implements a minimal parser for the update path notation
// reported by the jfrag package.
package upath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr  = "root" steps
 steps  = step [steps]
  step  = "." name
  step  = "[" index "]"
  name  = WORD
  name  = "*"
 index  = INDEX
 index  = "*"

  WORD  = RE `\w+`
 INDEX  = RE `\d+`

The "*" forms are wildcards, matching any single member name or element
index at their position. The parser reported by jfrag never emits
wildcards; they exist for patterns matched against concrete paths.
*/

// An Op is a path step operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // object member lookup (.)
	Index             // array element lookup ([n])
)

var opText = map[Op]string{
	Invalid: "invalid",
	Member:  ".",
	Index:   "index",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a path expression.
type Step struct {
	Op    Op
	Name  string // Member: the member name, or "*"
	Index int    // Index: the element index, or -1 for "*"
}

// IsWild reports whether s matches any name or index at its position.
func (s Step) IsWild() bool {
	return s.Op == Member && s.Name == "*" || s.Op == Index && s.Index < 0
}

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "root")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("root")
	for _, s := range e {
		switch s.Op {
		case Member:
			buf.WriteString(".")
			buf.WriteString(s.Name)
		case Index:
			if s.Index < 0 {
				buf.WriteString("[*]")
			} else {
				fmt.Fprintf(&buf, "[%d]", s.Index)
			}
		}
	}
	return buf.String()
}

// Matches reports whether o matches e: the expressions have equal length,
// and each step of o is equal to the corresponding step of e, or that step
// of e is a wildcard.
func (e Expr) Matches(o Expr) bool {
	if len(o) != len(e) {
		return false
	}
	for i, s := range e {
		t := o[i]
		if s.Op != t.Op {
			return false
		} else if s.IsWild() {
			continue
		}
		if s.Op == Member && s.Name != t.Name || s.Op == Index && s.Index != t.Index {
			return false
		}
	}
	return true
}

// Match reports whether the path s matches e. A string that does not parse
// as a path expression matches nothing.
func (e Expr) Match(s string) bool {
	o, err := Parse(s)
	if err != nil {
		return false
	}
	return e.Matches(o)
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		if u, ok := strings.CutPrefix(t, "*"); ok {
			return Step{Op: Member, Name: "*"}, u, nil
		}
		m := wordRE.FindString(t)
		if m == "" {
			return Step{}, s, errors.New("invalid member name")
		}
		return Step{Op: Member, Name: m}, t[len(m):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseIndex(t)
		if err != nil {
			return Step{}, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseIndex(s string) (Step, string, error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Step{Op: Index, Index: -1}, t, nil
	}
	m := indexRE.FindString(s)
	if m == "" {
		return Step{}, s, errors.New("invalid index")
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return Step{}, s, err
	}
	return Step{Op: Index, Index: n}, s[len(m):], nil
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^\d+`)
)
