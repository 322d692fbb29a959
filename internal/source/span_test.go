package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 8, End: 10},
			expected: Span{File: 1, Start: 2, End: 10},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 0, End: 10},
			b:        Span{File: 1, Start: 3, End: 5},
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 3, End: 5},
			b:        Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 3, End: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{File: 0, Start: 2, End: 9}
	if !outer.Contains(Span{File: 0, Start: 2, End: 9}) {
		t.Error("span must contain itself")
	}
	if !outer.Contains(Span{File: 0, Start: 9, End: 9}) {
		t.Error("empty span at the end must be contained")
	}
	if outer.Contains(Span{File: 0, Start: 1, End: 3}) {
		t.Error("span starting before outer must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 3, End: 4}) {
		t.Error("span from another file must not be contained")
	}
}

func TestSpan_StringAndLen(t *testing.T) {
	sp := Span{File: 3, Start: 4, End: 9}
	if sp.String() != "3:4-9" {
		t.Errorf("String() = %q", sp.String())
	}
	if sp.Range() != "4..9" {
		t.Errorf("Range() = %q", sp.Range())
	}
	if sp.Len() != 5 || sp.Empty() {
		t.Errorf("Len() = %d, Empty() = %v", sp.Len(), sp.Empty())
	}
}
