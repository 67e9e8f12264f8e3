package infer

// levenshteinDistance computes the classic edit distance between a and
// b. Grounded on original_source/src/UTIL/levenshtein.c (a small,
// exact, named-by-the-spec algorithm); reimplemented directly rather
// than imported, since nothing in the example pack offers a Levenshtein
// dependency and this is an 18-line DP table, not a concern worth a
// third-party package for (see DESIGN.md / SPEC_FULL.md §11 "not
// wired").
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost
			curr[j] = minOf(deletion, minOf(insertion, substitution))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minOf(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// nearestNameThreshold is the minimum edit distance under which a
// candidate name is considered a usable suggestion (spec.md §4.3:
// "minimum threshold of 3 edits").
const nearestNameThreshold = 3

// nearestName finds the candidate in names closest to target by edit
// distance, returning ("", false) if nothing is within
// nearestNameThreshold.
func nearestName(target string, names []string) (string, bool) {
	best := ""
	bestDist := nearestNameThreshold + 1
	for _, n := range names {
		d := levenshteinDistance(target, n)
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	if bestDist > nearestNameThreshold {
		return "", false
	}
	return best, true
}
