package picker

import (
	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// Template is one of the fixed output layouts.
type Template string

// Supported templates. DD and MM are zero padded to two digits and YYYY to
// four; the ordinal templates print the day unpadded followed by its suffix.
const (
	TemplateISO             Template = "YYYY-MM-DD"
	TemplateSlash           Template = "YYYY/MM/DD"
	TemplateDot             Template = "YYYY.MM.DD"
	TemplateDayFirstDash    Template = "DD-MM-YYYY"
	TemplateDayFirstSlash   Template = "DD/MM/YYYY"
	TemplateMonthFirstSlash Template = "MM/DD/YYYY"
	TemplateDayMonthName    Template = "DD MMMM YYYY"
	TemplateMonthNameDay    Template = "MMMM DD, YYYY"
	TemplateOrdinalDay      Template = "DDth MMMM, YYYY"
	TemplateMonthOrdinalDay Template = "MMMM DDth, YYYY"
)

// DefaultTemplate is substituted for any unrecognized template.
const DefaultTemplate = TemplateISO

// Templates returns every supported template.
func Templates() []Template {
	return []Template{
		TemplateISO,
		TemplateSlash,
		TemplateDot,
		TemplateDayFirstDash,
		TemplateDayFirstSlash,
		TemplateMonthFirstSlash,
		TemplateDayMonthName,
		TemplateMonthNameDay,
		TemplateOrdinalDay,
		TemplateMonthOrdinalDay,
	}
}

// Valid reports whether t is a supported template.
func (t Template) Valid() bool {
	for _, v := range Templates() {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTemplate returns the template named by val. Unknown names yield
// DefaultTemplate and false.
func ParseTemplate(val string) (Template, bool) {
	t := Template(val)
	if t.Valid() {
		return t, true
	}
	return DefaultTemplate, false
}

// Format renders the half of date selected by lang using tmpl. English uses
// the AD fields, Nepali the BS fields with every numeral in Devanagari.
// Unrecognized templates are rendered as YYYY-MM-DD.
func Format(date calendar.DualDate, lang Language, tmpl Template) string {
	d := date.In(lang.Primary())

	year := number(lang, d.Year, 4)
	month := number(lang, d.Month+1, 2)
	day := number(lang, d.Day, 2)
	name := MonthName(lang.Primary(), lang, d.Month)

	switch tmpl {
	case TemplateSlash:
		return year + "/" + month + "/" + day
	case TemplateDot:
		return year + "." + month + "." + day
	case TemplateDayFirstDash:
		return day + "-" + month + "-" + year
	case TemplateDayFirstSlash:
		return day + "/" + month + "/" + year
	case TemplateMonthFirstSlash:
		return month + "/" + day + "/" + year
	case TemplateDayMonthName:
		return day + " " + name + " " + year
	case TemplateMonthNameDay:
		return name + " " + day + ", " + year
	case TemplateOrdinalDay:
		return ordinalDay(lang, d.Day) + " " + name + ", " + year
	case TemplateMonthOrdinalDay:
		return name + " " + ordinalDay(lang, d.Day) + ", " + year
	default:
		return year + "-" + month + "-" + day
	}
}
