package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"utilitybelt/pkg/belt"
)

// dateLayouts are tried in order when parsing week arguments.
var dateLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [date...]",
		Short: "Print the ISO-8601 week number of each date",
		Long: `Accepts RFC 3339 timestamps, "2006-01-02 15:04:05" or "2006-01-02".
Arguments that do not parse as a date report week -1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWeek,
	}
}

func runWeek(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", arg, belt.WeekNumber(parseDate(arg)))
	}
	return nil
}

// parseDate returns a time.Time for recognised layouts and the raw string
// otherwise, leaving the not-a-date decision to WeekNumber.
func parseDate(s string) any {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return s
}
