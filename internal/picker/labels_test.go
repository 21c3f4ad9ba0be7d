package picker

import (
	"errors"
	"testing"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

func TestHeaderLabels(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name   string
		value  string
		lang   Language
		render Language
		want   Header
	}{
		{
			name: "AD January 2025 in English", value: "2025-01-01", lang: English, render: English,
			want: Header{Primary: "January 2025", SecondaryRange: "Poush/Magh 2081"},
		},
		{
			name: "AD January 2025 in Nepali", value: "2025-01-01", lang: English, render: Nepali,
			want: Header{Primary: "जनवरी २०२५", SecondaryRange: "पुस/माघ २०८१"},
		},
		{
			name: "BS Poush 2081 in Nepali", value: "2081-09-17", lang: Nepali, render: Nepali,
			want: Header{Primary: "पुस २०८१", SecondaryRange: "डिसेम्बर/जनवरी २०२४-२०२५"},
		},
		{
			name: "BS Poush 2081 in English", value: "2081-09-17", lang: Nepali, render: English,
			want: Header{Primary: "Poush 2081", SecondaryRange: "December/January 2024-2025"},
		},
		{
			name: "AD April 2025 crosses BS new year", value: "2025-04-20", lang: English, render: English,
			want: Header{Primary: "April 2025", SecondaryRange: "Chaitra/Baisakh 2081-2082"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustInit(t, e, tt.value, tt.lang)
			got, err := e.HeaderLabels(c, tt.render)
			if err != nil {
				t.Fatalf("HeaderLabels() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HeaderLabels() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMonthNameRange_DerivedFromPrimaryDays(t *testing.T) {
	e := testEngine(t)

	// Every AD month of 2025: the label must match converting the month's
	// own first and last day.
	for m := 0; m < 12; m++ {
		anchor := calendar.Date{Year: 2025, Month: m, Day: 1}
		got, err := e.MonthNameRange(anchor, calendar.AD, English)
		if err != nil {
			t.Fatalf("MonthNameRange(2025-%02d) error = %v", m+1, err)
		}

		first, _ := e.Oracle().ADToBS(anchor)
		last, _ := e.Oracle().ADToBS(calendar.Date{Year: 2025, Month: m, Day: calendar.DaysInADMonth(2025, m)})
		want := MonthName(calendar.BS, English, first.Month)
		if last.Month != first.Month {
			want += "/" + MonthName(calendar.BS, English, last.Month)
		}
		if got != want {
			t.Errorf("MonthNameRange(2025-%02d) = %q, want %q", m+1, got, want)
		}
	}
}

func TestYearRange_SingleYear(t *testing.T) {
	e := testEngine(t)

	got, err := e.YearRange(calendar.Date{Year: 2081, Month: 5, Day: 1}, calendar.BS, English)
	if err != nil {
		t.Fatalf("YearRange() error = %v", err)
	}
	if got != "2024" {
		t.Errorf("YearRange(Asoj 2081) = %q, want %q", got, "2024")
	}
}

func TestMonthNameRange_UnsupportedEra(t *testing.T) {
	e := testEngine(t)

	_, err := e.MonthNameRange(calendar.Date{Year: 2000, Month: 0, Day: 1}, calendar.AD, English)
	if !errors.Is(err, calendar.ErrUnsupportedEra) {
		t.Errorf("MonthNameRange(2000) error = %v, want ErrUnsupportedEra", err)
	}
	_, err = e.YearRange(calendar.Date{Year: 2095, Month: 0, Day: 1}, calendar.BS, English)
	if !errors.Is(err, calendar.ErrUnsupportedEra) {
		t.Errorf("YearRange(2095) error = %v, want ErrUnsupportedEra", err)
	}
}
