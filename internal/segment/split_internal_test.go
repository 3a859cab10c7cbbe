package segment

import "testing"

func TestBestSplitPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"no candidates", "plain words only", -1},
		{"single candidate", "left side, right side", 11},
		{"equal distance favors priority", "a, bb. cccc", 7},
		{"equal distance favors lower offset", "a, bb, cccc", 3},
		{"closest wins over priority", "aaaa bbbb, cccc. d", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := bestSplitPoint(tt.in); got != tt.want {
				t.Errorf("bestSplitPoint(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMidWordBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", -1},
		{"one", -1},
		{"one two", 4},
		{"a b c", 2},
		{"  a  b  c d", 8},
	}
	for _, tt := range tests {
		if got := midWordBoundary(tt.in); got != tt.want {
			t.Errorf("midWordBoundary(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
