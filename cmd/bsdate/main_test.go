package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zapponejosh/sambat-api/internal/calendar"
)

func fixedClock() time.Time {
	return time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, fixedClock)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "convert bs",
			args: []string{"convert", "bs", "2081-09-17"},
			want: []string{"AD: 2025-01-01", "BS: 2081-09-17  २०८१-०९-१७", "Weekday: Wednesday"},
		},
		{
			name: "convert ad",
			args: []string{"convert", "ad", "2024-09-17"},
			want: []string{"BS: 2081-06-01"},
		},
		{
			name: "format english ordinal",
			args: []string{"format", "2025-01-01", "--lang", "en", "--template", "MMMM DDth, YYYY"},
			want: []string{"January 1st, 2025\n"},
		},
		{
			name: "format nepali month name",
			args: []string{"format", "2081-09-17", "-t", "DD MMMM YYYY"},
			want: []string{"१७ पुस २०८१\n"},
		},
		{
			name: "today",
			args: []string{"today"},
			want: []string{"BS: 2081-09-17", "AD: 2025-01-01"},
		},
		{
			name: "month english",
			args: []string{"month", "2025-01-01", "--lang", "en"},
			want: []string{"January 2025 (Poush/Magh 2081)", "Su  Mo  Tu  We", "  1*  2   3   4"},
		},
		{
			name: "month advanced",
			args: []string{"month", "2025-01-01", "--lang", "en", "--advance", "3"},
			want: []string{"April 2025 (Chaitra/Baisakh 2081-2082)"},
		},
		{
			name: "month nepali",
			args: []string{"month", "2081-09-17"},
			want: []string{"पुस २०८१ (डिसेम्बर/जनवरी २०२४-२०२५)", " १७*"},
		},
		{
			name: "templates",
			args: []string{"templates"},
			want: []string{"* YYYY-MM-DD", "  DDth MMMM, YYYY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute(%v) error = %v", tt.args, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad month", []string{"convert", "bs", "2081-13-01"}, calendar.ErrInvalidDateString},
		{"day past end", []string{"convert", "bs", "2081-09-30"}, calendar.ErrInvalidDate},
		{"outside table", []string{"convert", "ad", "1990-01-01"}, calendar.ErrUnsupportedEra},
		{"advance past table", []string{"month", "2090-12-01", "--advance", "1"}, calendar.ErrUnsupportedEra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute(%v) error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}

func TestUnknownLanguage(t *testing.T) {
	if _, err := execute(t, "format", "--lang", "fr"); err == nil {
		t.Error("Execute(--lang fr) error = nil, want error")
	}
}
