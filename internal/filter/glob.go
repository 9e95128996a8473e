package filter

// Match reports whether text matches the glob pattern. The pattern
// language is deliberately small: '*' matches zero or more characters,
// '?' matches exactly one, and everything else matches literally. The
// match covers the full string (anchored at both ends).
//
// Matching backtracks exhaustively on '*': a greedy single pass would
// reject inputs like pattern "*a*b*" against "xaxbx", where an earlier
// star must give characters back for a later literal to match.
func Match(pattern, text string) bool {
	return matchFrom([]rune(pattern), []rune(text), 0, 0)
}

func matchFrom(pattern, text []rune, pi, ti int) bool {
	if pi == len(pattern) {
		return ti == len(text)
	}

	switch pattern[pi] {
	case '*':
		// Try every split point, including consuming nothing.
		for i := ti; i <= len(text); i++ {
			if matchFrom(pattern, text, pi+1, i) {
				return true
			}
		}
		return false
	case '?':
		return ti < len(text) && matchFrom(pattern, text, pi+1, ti+1)
	default:
		return ti < len(text) && text[ti] == pattern[pi] &&
			matchFrom(pattern, text, pi+1, ti+1)
	}
}
