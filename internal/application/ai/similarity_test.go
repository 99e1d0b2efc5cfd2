package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical strings",
			a:    "chicken stir-fry",
			b:    "chicken stir-fry",
			want: 1,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 1,
		},
		{
			name: "one empty",
			a:    "soup",
			b:    "",
			want: 0,
		},
		{
			name: "no common characters",
			a:    "abc",
			b:    "xyz",
			want: 0,
		},
		{
			// Longest block "bcd" matches, nothing remains on the sides:
			// 2*3/8.
			name: "overlapping shifted strings",
			a:    "abcd",
			b:    "bcde",
			want: 0.75,
		},
		{
			// Blocks "ear" and "t" match across the recursion: 2*4/10.
			name: "recursion picks up side matches",
			a:    "heart",
			b:    "earth",
			want: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, similarityRatio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestIsRepeat_ThresholdBoundary(t *testing.T) {
	// 7 of 20 total characters match: ratio is exactly 0.7, which is not
	// above the threshold and so not a repeat.
	require.Equal(t, 0.7, similarityRatio("abcdefghij", "abcdefgxyz"))
	require.False(t, IsRepeat("abcdefghij", []string{"abcdefgxyz"}))

	// One more matching character pushes the ratio over the line.
	require.True(t, similarityRatio("abcdefghij", "abcdefghyz") > 0.7)
	require.True(t, IsRepeat("abcdefghij", []string{"abcdefghyz"}))
}
