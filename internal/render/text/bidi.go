package text

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// run is a directional slice of a line in logical order
type run struct {
	text string
	rtl  bool
}

// baseDirection resolves the paragraph direction. An explicit RTL style wins,
// otherwise the first strong character decides.
func baseDirection(s string, d Direction) Direction {
	if d == RTL {
		return RTL
	}
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return LTR
}

// visualRuns splits s into directional runs and returns them left to right.
// Text inside each run stays in logical order; the shaper reverses RTL runs.
func visualRuns(s string, base Direction) (runs []run) {
	defer func() {
		if recover() != nil {
			runs = []run{{text: s, rtl: base == RTL}}
		}
	}()

	def := bidi.LeftToRight
	if base == RTL {
		def = bidi.RightToLeft
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(def)); err != nil {
		return []run{{text: s, rtl: base == RTL}}
	}
	ord, err := p.Order()
	if err != nil || ord.NumRuns() == 0 {
		return []run{{text: s, rtl: base == RTL}}
	}

	for i := 0; i < ord.NumRuns(); i++ {
		r := ord.Run(i)
		if r.String() == "" {
			continue
		}
		runs = append(runs, run{text: r.String(), rtl: r.Direction() == bidi.RightToLeft})
	}

	// Runs come back in logical order. In an RTL paragraph every run sits at
	// an odd or higher even level, so the whole sequence flips.
	if base == RTL {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return runs
}

// hasArabic reports whether any rune belongs to the Arabic script
func hasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
