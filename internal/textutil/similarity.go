package textutil

// Ratio returns the indel similarity of a and b as an integer in [0, 100].
// The score is 100*(1 - d/(len(a)+len(b))) truncated toward zero, where d
// is the minimum number of single-rune insertions and deletions turning a
// into b. Empty input on either side scores 0.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	dist := total - 2*lcsLength(ra, rb)
	return (total - dist) * 100 / total
}

// lcsLength computes the length of the longest common subsequence using two
// rolling rows, keeping memory proportional to the shorter string.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for _, ca := range a {
		for j, cb := range b {
			if ca == cb {
				curr[j+1] = prev[j] + 1
			} else if prev[j+1] >= curr[j] {
				curr[j+1] = prev[j+1]
			} else {
				curr[j+1] = curr[j]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
