package handler

import "unicode"

// Validation bounds for user-supplied movie data. These match what
// the forms accept; the repository layer stores whatever it is given,
// so every write path must validate before calling into it.
const (
	maxNameLen  = 100
	maxTitleLen = 100
	minYear     = 1900
	maxYear     = 2100
	minRating   = 0
	maxRating   = 10
)

// validName reports whether s is a usable user or movie name:
// non-empty and at most max characters.
func validName(s string, max int) bool {
	return s != "" && len(s) <= max
}

// validDirector reports whether s consists of letters and spaces only
// and contains at least one letter.
func validDirector(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ':
		default:
			return false
		}
	}
	return hasLetter
}

// validYear reports whether y is a plausible release year.
func validYear(y int) bool {
	return y >= minYear && y <= maxYear
}

// validRating reports whether r is on the accepted 0–10 scale.
func validRating(r float64) bool {
	return r >= minRating && r <= maxRating
}
