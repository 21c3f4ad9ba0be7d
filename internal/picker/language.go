// Package picker implements the dual-calendar date picker engine: a month
// cursor that moves through BS and AD months together, the fixed output
// templates and the cross-calendar header labels.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/numeral"
)

// ErrUnknownLanguage is returned for a language other than np or en.
var ErrUnknownLanguage = errors.New("unknown language")

// Language selects the primary calendar and the script used for output.
type Language string

const (
	// Nepali uses the BS calendar, Devanagari numerals and Nepali month names.
	Nepali Language = "np"
	// English uses the AD calendar, ASCII numerals and English month names.
	English Language = "en"
)

// ParseLanguage parses "np" (or "ne") and "en" in either case.
func ParseLanguage(val string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "np", "ne":
		return Nepali, nil
	case "en":
		return English, nil
	}
	return "", fmt.Errorf("%w: %q, expected np or en", ErrUnknownLanguage, val)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == Nepali || l == English
}

// Primary returns the calendar the language displays and parses input in.
func (l Language) Primary() calendar.System {
	if l == Nepali {
		return calendar.BS
	}
	return calendar.AD
}

var (
	englishADMonths = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	nepaliBSMonths = [12]string{
		"बैशाख", "जेठ", "असार", "साउन", "भदौ", "असोज",
		"कात्तिक", "मंसिर", "पुस", "माघ", "फागुन", "चैत",
	}
	// BS month names in Latin script, for BS labels shown in English.
	romanBSMonths = [12]string{
		"Baisakh", "Jestha", "Asar", "Shrawan", "Bhadra", "Asoj",
		"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
	}
	// AD month names in Devanagari, for AD labels shown in Nepali.
	nepaliADMonths = [12]string{
		"जनवरी", "फेब्रुअरी", "मार्च", "अप्रिल", "मे", "जुन",
		"जुलाई", "अगस्ट", "सेप्टेम्बर", "अक्टोबर", "नोभेम्बर", "डिसेम्बर",
	}
)

// MonthName returns the name of a zero based month of sys, written for lang.
func MonthName(sys calendar.System, lang Language, month int) string {
	if month < 0 || month > 11 {
		return ""
	}
	switch {
	case sys == calendar.BS && lang == Nepali:
		return nepaliBSMonths[month]
	case sys == calendar.BS:
		return romanBSMonths[month]
	case lang == Nepali:
		return nepaliADMonths[month]
	default:
		return englishADMonths[month]
	}
}

// number renders n padded to width with the numerals of lang.
func number(lang Language, n, width int) string {
	s := numeral.Pad(n, width)
	if lang == Nepali {
		return numeral.Localize(s)
	}
	return s
}

// YearLabel renders a year with the numerals of lang.
func YearLabel(lang Language, year int) string {
	return number(lang, year, 0)
}

func ordinalDay(lang Language, day int) string {
	return number(lang, day, 0) + calendar.OrdinalSuffix(day)
}
