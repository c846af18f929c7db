package wrap

import (
	"github.com/mattn/go-runewidth"
)

func runeColumns(r rune) int {
	if r == SoftHyphen {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Columns returns the number of screen columns rs occupies.
func Columns(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += runeColumns(r)
	}
	return n
}

// StringColumns is Columns for a string.
func StringColumns(s string) int {
	n := 0
	for _, r := range s {
		n += runeColumns(r)
	}
	return n
}

// Fit returns how many leading runes of rs fit into cols columns.
func Fit(rs []rune, cols int) int {
	used := 0
	for i, r := range rs {
		used += runeColumns(r)
		if used > cols {
			return i
		}
	}
	return len(rs)
}
