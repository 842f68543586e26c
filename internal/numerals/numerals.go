// Package numerals converts ASCII digits to other digit sets.
package numerals

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// System names a digit set
type System string

const (
	Latin       System = "latin"
	ArabicIndic System = "arabic-indic"
)

var arabicIndic = runes.Map(func(r rune) rune {
	if r >= '0' && r <= '9' {
		return '٠' + (r - '0')
	}
	return r
})

// ToArabicIndic replaces 0-9 with U+0660..U+0669 and leaves everything else alone.
func ToArabicIndic(s string) string {
	out, _, err := transform.String(arabicIndic, s)
	if err != nil {
		return s
	}
	return out
}

// Formatter returns the digit conversion for a system. Unknown systems keep ASCII digits.
func Formatter(system System) func(string) string {
	if system == ArabicIndic {
		return ToArabicIndic
	}
	return func(s string) string { return s }
}
