package connect

// Matches reports whether candidate satisfies pattern, where pattern may
// contain a single wildcard semantics for '*' (matches zero or more
// characters); all other bytes match literally. The algorithm is the
// classic retry-point scanner: advance both pattern and candidate in
// lockstep, and on a literal mismatch, backtrack to the most recent '*' and
// retry one character further into the candidate. This runs in
// O(|pattern| x |candidate|) time in the worst case, which is acceptable
// for the short strings port names and globs actually are.
func Matches(pattern, candidate string) bool {
	var pi, ci int
	starIdx, candidateIdx := -1, -1

	for ci < len(candidate) {
		switch {
		case pi < len(pattern) && (pattern[pi] == candidate[ci]):
			pi++
			ci++
		case pi < len(pattern) && pattern[pi] == '*':
			starIdx = pi
			candidateIdx = ci
			pi++
		case starIdx != -1:
			pi = starIdx + 1
			candidateIdx++
			ci = candidateIdx
		default:
			return false
		}
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
