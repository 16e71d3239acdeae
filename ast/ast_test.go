// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/jfrag"
	"github.com/creachadair/jfrag/ast"
	"github.com/creachadair/mds/mtest"
)

const testInput = `{"episodes":[{"title":"Pilot","episode":1,"minutes":41.5,"good":true},{"title":"Done","note":null}],"count":2}`

// build parses input in a single fragment and returns the resulting tree.
func build(t *testing.T, input string) *ast.Builder {
	t.Helper()
	p := jfrag.New("test")
	b := new(ast.Builder)
	b.ApplyAll(p.AddFragment(input))
	return b
}

func TestBuilder(t *testing.T) {
	b := build(t, testInput)
	if !b.Complete() {
		t.Fatal("Builder does not report complete")
	}

	root, ok := b.Root().(*ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", b.Root())
	}
	if got, want := root.Span(), (jfrag.Span{Pos: 0, End: len(testInput)}); got != want {
		t.Errorf("Root span: got %+v, want %+v", got, want)
	}

	mem := root.Find("episodes")
	if mem == nil {
		t.Fatal(`Key "episodes" not found`)
	}
	lst, ok := mem.Value.(*ast.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", mem.Value)
	} else if len(lst.Values) != 2 {
		t.Fatalf("Array has %d values, want 2", len(lst.Values))
	}

	obj, ok := lst.Values[0].(*ast.Object)
	if !ok {
		t.Fatalf("Array entry is %T, not object", lst.Values[0])
	}
	check(t, obj, "title", func(s *ast.String) {
		if !s.Done() {
			t.Error("Title string is not done")
		}
		if got := s.Value(); got != "Pilot" {
			t.Errorf("Title: got %q, want %q", got, "Pilot")
		}
	})
	check(t, obj, "episode", func(z ast.Integer) {
		if got := z.Int64(); got != 1 {
			t.Errorf("Episode: got %d, want 1", got)
		}
	})
	check(t, obj, "minutes", func(n ast.Number) {
		if got := n.Float64(); got != 41.5 {
			t.Errorf("Minutes: got %v, want 41.5", got)
		}
	})
	check(t, obj, "good", func(v ast.Bool) {
		if !v.Value() {
			t.Error("Good is false, want true")
		}
	})
	if second, ok := lst.Values[1].(*ast.Object); ok {
		check(t, second, "note", func(ast.Null) {})
	} else {
		t.Errorf("Second entry is %T, not object", lst.Values[1])
	}

	// A complete tree renders back to its source text.
	if got := root.JSON(); got != testInput {
		t.Errorf("JSON:\n got %s\nwant %s", got, testInput)
	}
}

func check[T any](t *testing.T, obj *ast.Object, key string, f func(T)) {
	t.Helper()
	if v := obj.Find(key); v == nil {
		t.Fatalf("Key %q not found", key)
	} else if tv, ok := v.Value.(T); !ok {
		var zero T
		t.Fatalf("Key %q value is %T, not %T", key, v.Value, zero)
	} else if f != nil {
		f(tv)
	}
}

func TestPartialTree(t *testing.T) {
	p := jfrag.New("test")
	b := new(ast.Builder)

	b.ApplyAll(p.AddFragment(`{"episodes":[{"title":"Pil`))
	if b.Complete() {
		t.Error("Builder reports complete early")
	}
	root, ok := b.Root().(*ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", b.Root())
	}

	v, err := ast.At(root, "root.episodes[0].title")
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	s, ok := v.(*ast.String)
	if !ok {
		t.Fatalf("Value is %T, not string", v)
	}
	if s.Done() {
		t.Error("Partial string reports done")
	}
	if got := s.Value(); got != "Pil" {
		t.Errorf("Partial content: got %q, want %q", got, "Pil")
	}

	// A partial tree renders what has arrived so far.
	if got, want := root.JSON(), `{"episodes":[{"title":"Pil"}]}`; got != want {
		t.Errorf("Partial JSON:\n got %s\nwant %s", got, want)
	}

	b.ApplyAll(p.AddFragment(`ot"}]}`))
	if !b.Complete() {
		t.Error("Builder does not report complete")
	}
	if got, want := root.JSON(), `{"episodes":[{"title":"Pilot"}]}`; got != want {
		t.Errorf("Final JSON:\n got %s\nwant %s", got, want)
	}
}

func TestAt(t *testing.T) {
	b := build(t, testInput)
	root := b.Root()

	if v, err := ast.At(root, "root"); err != nil || v != root {
		t.Errorf("At root: got %v, %v; want the root", v, err)
	}
	if v, err := ast.At(root, "root.episodes[1].title"); err != nil {
		t.Errorf("At episodes[1].title: %v", err)
	} else if s, ok := v.(*ast.String); !ok || s.Value() != "Done" {
		t.Errorf("At episodes[1].title: got %v", v)
	}
	if v, err := ast.At(root, "root.count"); err != nil {
		t.Errorf("At count: %v", err)
	} else if z, ok := v.(ast.Integer); !ok || z.Int64() != 2 {
		t.Errorf("At count: got %v", v)
	}

	bads := []string{
		"bogus",                  // not a path
		"root.missing",           // no such key
		"root.episodes[9]",       // index out of range
		"root.episodes.x",        // member lookup in array
		"root[0]",                // index lookup in object
		"root.episodes[*].title", // wildcards are not resolvable
		"root.count.x",           // traversal through a scalar
	}
	for _, bad := range bads {
		if v, err := ast.At(root, bad); err == nil {
			t.Errorf("At %q: got %v, want error", bad, v)
		}
	}
}

func TestNumericPanics(t *testing.T) {
	b := build(t, `[99999999999999999999,1e999]`)
	lst := b.Root().(*ast.Array)

	z := lst.Values[0].(ast.Integer)
	mtest.MustPanic(t, func() { z.Int64() })

	n := lst.Values[1].(ast.Number)
	mtest.MustPanic(t, func() { n.Float64() })
}
