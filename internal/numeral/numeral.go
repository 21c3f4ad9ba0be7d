// Package numeral transcodes ASCII digits to Devanagari numerals and back.
package numeral

import (
	"strconv"
	"strings"
)

// devanagari holds the glyphs for 0-9.
var devanagari = [10]rune{'०', '१', '२', '३', '४', '५', '६', '७', '८', '९'}

// Localize replaces every ASCII digit in s with its Devanagari glyph.
// Other runes are passed through unchanged.
func Localize(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(devanagari[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Delocalize replaces every Devanagari digit in s with its ASCII digit.
func Delocalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= devanagari[0] && r <= devanagari[9] {
			b.WriteRune('0' + (r - devanagari[0]))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pad formats n in ASCII, left padded with zeros to at least width digits.
func Pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// LocalizePadded pads n to width and then transcodes it.
func LocalizePadded(n, width int) string {
	return Localize(Pad(n, width))
}
