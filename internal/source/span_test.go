package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("expected 2-8, got %v", c)
	}
}

func TestSpanCoverIgnoresOtherFiles(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 2, Start: 0, End: 100}
	if c := a.Cover(b); c != a {
		t.Fatalf("cover across files must be a no-op, got %v", c)
	}
}

func TestSpanLen(t *testing.T) {
	s := Span{Start: 3, End: 9}
	if s.Len() != 6 {
		t.Fatalf("expected length 6, got %d", s.Len())
	}
	if s.Empty() {
		t.Fatalf("span should not be empty")
	}
}
