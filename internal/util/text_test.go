package util

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Firefox", 10, "Firefox"},
		{"Thunderbird", 6, "Thund…"},
		{"端末エミュレータ", 5, "端末…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if Width(Truncate(tt.in, tt.width)) > tt.width {
			t.Fatalf("Truncate(%q, %d) exceeds width", tt.in, tt.width)
		}
	}
}

func TestSpaces(t *testing.T) {
	if Spaces(-2) != "" || Spaces(3) != "   " {
		t.Fatal("unexpected padding")
	}
}
