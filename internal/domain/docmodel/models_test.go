package docmodel

import (
	"strings"
	"testing"
)

func TestContentHash(t *testing.T) {
	h1 := ContentHash([]byte("same bytes"))
	h2 := ContentHash([]byte("same bytes"))
	h3 := ContentHash([]byte("other bytes"))

	if h1 != h2 {
		t.Error("identical bytes must hash identically")
	}
	if h1 == h3 {
		t.Error("different bytes must hash differently")
	}
	if !ValidContentHash(h1) {
		t.Errorf("produced hash fails its own validation: %s", h1)
	}
}

func TestValidContentHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want bool
	}{
		{name: "Valid", hash: strings.Repeat("ab", 32), want: true},
		{name: "Too_Short", hash: "abc123", want: false},
		{name: "Uppercase_Rejected", hash: strings.Repeat("AB", 32), want: false},
		{name: "Non_Hex", hash: strings.Repeat("zz", 32), want: false},
		{name: "Empty", hash: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidContentHash(tt.hash); got != tt.want {
				t.Errorf("ValidContentHash(%q) = %v, want %v", tt.hash, got, tt.want)
			}
		})
	}
}

func TestSegmentBbox(t *testing.T) {
	s := Segment{Left: 1, Top: 2, Width: 3, Height: 4, Key: 9}
	if s.Bbox() != [4]float64{1, 2, 3, 4} {
		t.Errorf("Bbox got %v", s.Bbox())
	}
	if s.KeyString() != "9" {
		t.Errorf("KeyString got %q", s.KeyString())
	}
}
