package picker

import (
	"strings"
	"testing"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

// poush17 is 17 Poush 2081, which is 1 January 2025.
var poush17 = calendar.DualDate{
	BS: calendar.Date{Year: 2081, Month: 8, Day: 17},
	AD: calendar.Date{Year: 2025, Month: 0, Day: 1},
}

func TestFormat_English(t *testing.T) {
	tests := []struct {
		tmpl Template
		want string
	}{
		{TemplateISO, "2025-01-01"},
		{TemplateSlash, "2025/01/01"},
		{TemplateDot, "2025.01.01"},
		{TemplateDayFirstDash, "01-01-2025"},
		{TemplateDayFirstSlash, "01/01/2025"},
		{TemplateMonthFirstSlash, "01/01/2025"},
		{TemplateDayMonthName, "01 January 2025"},
		{TemplateMonthNameDay, "January 01, 2025"},
		{TemplateOrdinalDay, "1st January, 2025"},
		{TemplateMonthOrdinalDay, "January 1st, 2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tmpl), func(t *testing.T) {
			if got := Format(poush17, English, tt.tmpl); got != tt.want {
				t.Errorf("Format(en, %q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormat_Nepali(t *testing.T) {
	tests := []struct {
		tmpl Template
		want string
	}{
		{TemplateISO, "२०८१-०९-१७"},
		{TemplateSlash, "२०८१/०९/१७"},
		{TemplateDot, "२०८१.०९.१७"},
		{TemplateDayFirstDash, "१७-०९-२०८१"},
		{TemplateDayFirstSlash, "१७/०९/२०८१"},
		{TemplateMonthFirstSlash, "०९/१७/२०८१"},
		{TemplateDayMonthName, "१७ पुस २०८१"},
		{TemplateMonthNameDay, "पुस १७, २०८१"},
		{TemplateOrdinalDay, "१७th पुस, २०८१"},
		{TemplateMonthOrdinalDay, "पुस १७th, २०८१"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tmpl), func(t *testing.T) {
			if got := Format(poush17, Nepali, tt.tmpl); got != tt.want {
				t.Errorf("Format(np, %q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormat_NepaliHasNoASCIIDigits(t *testing.T) {
	dates := []calendar.DualDate{
		poush17,
		{BS: calendar.Date{Year: 2080, Month: 0, Day: 1}, AD: calendar.Date{Year: 2023, Month: 3, Day: 14}},
		{BS: calendar.Date{Year: 2081, Month: 11, Day: 30}, AD: calendar.Date{Year: 2025, Month: 3, Day: 13}},
	}
	for _, d := range dates {
		for _, tmpl := range Templates() {
			got := Format(d, Nepali, tmpl)
			if strings.ContainsAny(got, "0123456789") {
				t.Errorf("Format(%v, np, %q) = %q contains ASCII digits", d.BS, tmpl, got)
			}
		}
	}
}

func TestFormat_UnknownTemplateFallsBack(t *testing.T) {
	if got := Format(poush17, English, Template("DD.MM.YY")); got != "2025-01-01" {
		t.Errorf("Format(en, unknown) = %q, want %q", got, "2025-01-01")
	}
	if got := Format(poush17, Nepali, Template("")); got != "२०८१-०९-१७" {
		t.Errorf("Format(np, empty) = %q, want %q", got, "२०८१-०९-१७")
	}
}

func TestFormat_OrdinalSuffixes(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {23, "23rd"}, {31, "31st"},
	}
	for _, tt := range tests {
		d := calendar.DualDate{AD: calendar.Date{Year: 2025, Month: 0, Day: tt.day}}
		got := Format(d, English, TemplateOrdinalDay)
		want := tt.want + " January, 2025"
		if got != want {
			t.Errorf("Format(day %d) = %q, want %q", tt.day, got, want)
		}
	}
}

func TestParseTemplate(t *testing.T) {
	for _, tmpl := range Templates() {
		got, ok := ParseTemplate(string(tmpl))
		if !ok || got != tmpl {
			t.Errorf("ParseTemplate(%q) = %q, %v", tmpl, got, ok)
		}
	}
	if got, ok := ParseTemplate("YY/MM"); ok || got != DefaultTemplate {
		t.Errorf("ParseTemplate(unknown) = %q, %v; want %q, false", got, ok, DefaultTemplate)
	}
	if n := len(Templates()); n != 10 {
		t.Errorf("len(Templates()) = %d, want 10", n)
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		sys   calendar.System
		lang  Language
		month int
		want  string
	}{
		{calendar.AD, English, 0, "January"},
		{calendar.AD, Nepali, 11, "डिसेम्बर"},
		{calendar.BS, Nepali, 0, "बैशाख"},
		{calendar.BS, English, 8, "Poush"},
		{calendar.BS, English, 12, ""},
	}
	for _, tt := range tests {
		if got := MonthName(tt.sys, tt.lang, tt.month); got != tt.want {
			t.Errorf("MonthName(%v, %s, %d) = %q, want %q", tt.sys, tt.lang, tt.month, got, tt.want)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"np", Nepali, false},
		{"NE", Nepali, false},
		{"en", English, false},
		{"fr", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if Nepali.Primary() != calendar.BS || English.Primary() != calendar.AD {
		t.Error("Primary() mapping is wrong")
	}
}
