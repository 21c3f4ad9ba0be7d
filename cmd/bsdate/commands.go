package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/numeral"
	"github.com/zapponejosh/sambat-api/internal/picker"
)

var weekdayHeaders = map[picker.Language][7]string{
	picker.English: {"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	picker.Nepali:  {"आ", "सो", "मं", "बु", "बि", "शु", "श"},
}

func convertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <bs|ad> <YYYY-MM-DD>",
		Short: "Convert a date to the other calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := calendar.ParseSystem(args[0])
			if err != nil {
				return err
			}
			d, err := calendar.ParseDateString(numeral.Delocalize(args[1]))
			if err != nil {
				return err
			}
			dd, err := calendar.Convert(opts.table, sys, d)
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), dd, opts.engine.Template())
			return nil
		},
	}
}

func formatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format [YYYY-MM-DD]",
		Short: "Format a date in the primary calendar of --lang (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := opts.language()
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			c, err := opts.engine.Init(value, lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.engine.Format(*c.Selected, lang, opts.engine.Template()))
			return nil
		},
	}
}

func monthCmd(opts *options) *cobra.Command {
	var advance int

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM-DD]",
		Short: "Show a month grid with the overlapping months of the other calendar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := opts.language()
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 1 {
				value = args[0]
			}

			e := opts.engine
			c, err := e.Init(value, lang)
			if err != nil {
				return err
			}
			if advance != 0 {
				if c, err = e.Advance(c, advance); err != nil {
					return err
				}
			}

			header, err := e.HeaderLabels(c, lang)
			if err != nil {
				return err
			}
			grid, err := e.Grid(c)
			if err != nil {
				return err
			}

			printMonth(cmd.OutOrStdout(), lang, header, grid)
			return nil
		},
	}

	cmd.Flags().IntVarP(&advance, "advance", "a", 0, "Move the displayed month by this many months (may be negative)")
	return cmd
}

func todayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's date in both calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := opts.table.Now()
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), now, opts.engine.Template())
			return nil
		},
	}
}

func templatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the supported output templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range picker.Templates() {
				mark := " "
				if t == opts.engine.Template() {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\n", mark, t)
			}
			return nil
		},
	}
}

func printDay(w io.Writer, dd calendar.DualDate, tmpl picker.Template) {
	wd := time.Date(dd.AD.Year, time.Month(dd.AD.Month+1), dd.AD.Day, 0, 0, 0, 0, time.UTC).Weekday()
	fmt.Fprintf(w, "BS: %s  %s\n", dd.BS, picker.Format(dd, picker.Nepali, tmpl))
	fmt.Fprintf(w, "AD: %s  %s\n", dd.AD, picker.Format(dd, picker.English, tmpl))
	fmt.Fprintf(w, "Weekday: %s\n", calendar.DayName(wd))
}

// printMonth renders the grid as a Sunday-first calendar. Selected days are
// marked with * and today with +.
func printMonth(w io.Writer, lang picker.Language, header picker.Header, grid picker.MonthGrid) {
	fmt.Fprintf(w, "%s (%s)\n", header.Primary, header.SecondaryRange)

	heads := weekdayHeaders[lang]
	for _, h := range heads {
		fmt.Fprintf(w, "%4s", h)
	}
	fmt.Fprintln(w)

	var line strings.Builder
	line.WriteString(strings.Repeat("    ", grid.Leading))
	col := grid.Leading
	for _, d := range grid.Days {
		mark := " "
		switch {
		case d.Selected:
			mark = "*"
		case d.Today:
			mark = "+"
		}
		fmt.Fprintf(&line, "%3s%s", d.Label, mark)
		col++
		if col == 7 {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
			col = 0
		}
	}
	if line.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
