package ai

import "strings"

// repeatThreshold is the Ratcliff-Obershelp similarity above which two
// recipe names count as the same dish.
const repeatThreshold = 0.7

// IsRepeat reports whether the candidate name is too similar to any of the
// recent titles. Comparison is case insensitive. An empty history never
// counts as a repeat.
func IsRepeat(candidateName string, recentTitles []string) bool {
	if len(recentTitles) == 0 {
		return false
	}

	candidate := strings.ToLower(candidateName)
	for _, title := range recentTitles {
		if similarityRatio(candidate, strings.ToLower(title)) > repeatThreshold {
			return true
		}
	}
	return false
}

// similarityRatio computes the Ratcliff-Obershelp similarity of two strings:
// twice the number of matching characters over the total length, where
// matches are found by locating the longest common substring and recursing
// on the pieces to either side of it. Two empty strings are identical.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	aStart, bStart, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:aStart], b[:bStart]) +
		matchingRunes(a[aStart+size:], b[bStart+size:])
}

// longestCommonBlock returns the start offsets and length of the longest
// substring common to a and b. Of equal-length candidates the earliest in a
// wins.
func longestCommonBlock(a, b []rune) (int, int, int) {
	var aStart, bStart, size int

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return aStart, bStart, size
}
