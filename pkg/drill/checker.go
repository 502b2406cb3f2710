package drill

import (
	"strconv"
	"strings"
)

// numericTolerance absorbs rounding noise in decimal answers ("0.33" vs "0.333").
const numericTolerance = 0.01

// CheckAnswer reports whether a student answer matches the stored answer.
// It is true iff trimmed/lowercased string equality holds, or both values
// parse as numbers with absolute difference below the tolerance.
func CheckAnswer(given, want string) bool {
	g := strings.ToLower(strings.TrimSpace(given))
	w := strings.ToLower(strings.TrimSpace(want))

	if g == w {
		return true
	}

	gf, errG := strconv.ParseFloat(g, 64)
	wf, errW := strconv.ParseFloat(w, 64)
	if errG != nil || errW != nil {
		return false
	}

	diff := gf - wf
	if diff < 0 {
		diff = -diff
	}
	return diff < numericTolerance
}
