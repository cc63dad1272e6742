package paging

// StartLength is the first probe length of FitSearch.
const StartLength = 512

// Fits reports whether text fits the viewport without overflowing.
type Fits func(text string) bool

// FitSearch finds the largest n in [0, maxLen] for which
// fits(lengthToText(n)) holds. fits must be monotone: once a length overflows,
// every longer length overflows too.
//
// The search probes StartLength, then doubles until a probe overflows or
// maxLen is reached, and bisects the last interval. When the whole remainder
// fits on a probe the search stops there.
//
// ok is false when maxLen <= 0, in which case nothing is measured.
func FitSearch(lengthToText func(n int) string, maxLen int, fits Fits) (n int, ok bool) {
	if maxLen <= 0 {
		return 0, false
	}

	left := 0
	right := min(StartLength, maxLen)

	for fits(lengthToText(right)) {
		if right == maxLen {
			return maxLen, true
		}
		left = right
		right = min(right*2, maxLen)
	}

	for left != right {
		mid := (left + right + 1) / 2
		if fits(lengthToText(mid)) {
			left = mid
		} else {
			right = mid - 1
		}
	}

	return left, true
}
