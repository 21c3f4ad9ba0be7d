// Command bsdate converts, formats and displays dates in the Bikram Sambat
// and Gregorian calendars.
//
// Usage:
//
//	bsdate convert bs 2081-09-17
//	bsdate format 2025-01-01 --lang en --template "MMMM DDth, YYYY"
//	bsdate month 2081-09-01 --advance 2
//	bsdate today
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/sambat-api/internal/calendar"
	"github.com/zapponejosh/sambat-api/internal/database"
	"github.com/zapponejosh/sambat-api/internal/logger"
	"github.com/zapponejosh/sambat-api/internal/picker"
)

// options shared by every subcommand.
type options struct {
	lang     string
	template string
	dbPath   string
	logLevel string
	clock    func() time.Time

	log    *slog.Logger
	table  *calendar.Table
	engine *picker.Engine
}

func main() {
	if err := newRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, clock func() time.Time) *cobra.Command {
	opts := &options{clock: clock}

	rootCmd := &cobra.Command{
		Use:           "bsdate",
		Short:         "Bikram Sambat / Gregorian date tool",
		Long:          "Convert, format and display dates in the Bikram Sambat (BS) and Gregorian (AD) calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.Context())
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&opts.lang, "lang", "l", string(picker.Nepali), "Language: np (BS primary) or en (AD primary)")
	rootCmd.PersistentFlags().StringVarP(&opts.template, "template", "t", string(picker.DefaultTemplate), "Output template")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Load the year table from this SQLite database instead of the embedded one")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		convertCmd(opts),
		formatCmd(opts),
		monthCmd(opts),
		todayCmd(opts),
		templatesCmd(opts),
	)
	return rootCmd
}

// setup loads the year table and builds the engine.
func (o *options) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	o.log = logger.New(os.Stderr, o.logLevel, "text")

	if o.dbPath == "" {
		rows, err := calendar.DefaultRows()
		if err != nil {
			return err
		}
		o.table, err = calendar.NewTable(rows, o.clock)
		if err != nil {
			return err
		}
	} else {
		db, err := database.Open(database.DefaultConfig(o.dbPath), o.log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		o.table, err = db.LoadTable(ctx, o.clock)
		if err != nil {
			return err
		}
	}

	tmpl, ok := picker.ParseTemplate(o.template)
	if !ok {
		o.log.Warn("unknown template, using default",
			slog.String("template", o.template),
			slog.String("default", string(tmpl)),
		)
	}
	o.engine = picker.NewEngine(o.table, tmpl, o.log)
	return nil
}

func (o *options) language() (picker.Language, error) {
	return picker.ParseLanguage(o.lang)
}
