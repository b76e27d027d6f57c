package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/streaks"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

var (
	flagFile     string
	flagToday    string
	flagMonth    string
	flagTimezone string
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFile, "file", "f", "", "JSON file holding an array of habits")
	cmd.Flags().StringVar(&flagTimezone, "tz", "UTC", "Timezone that defines calendar days")
	_ = cmd.MarkFlagRequired("file")
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute streaks, success rate and achievements",
		Example: `  kansoctl stats --file habits.json
  kansoctl stats --file habits.json --today 2026-10-17 --tz Europe/Rome`,
		RunE: runStats,
	}
	addInputFlags(cmd)
	cmd.Flags().StringVar(&flagToday, "today", "", "Reference day (YYYY-MM-DD), defaults to the current day")
	return cmd
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Per-day completion levels for one month",
		RunE:  runCalendar,
	}
	addInputFlags(cmd)
	cmd.Flags().StringVar(&flagMonth, "month", "", "Month (YYYY-MM), defaults to the current one")
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	habits, loc, err := loadHabits()
	if err != nil {
		return err
	}

	today := time.Now().In(loc)
	if flagToday != "" {
		if !domain.IsValidDay(flagToday) {
			return fmt.Errorf("invalid --today %q, expected YYYY-MM-DD", flagToday)
		}
		today, _ = domain.ParseDay(flagToday, loc)
	}

	report := streaks.Report(habits, today)
	metrics.IncrementStatsComputation(metrics.SourceCLI)

	return printJSON(cmd, report)
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	habits, loc, err := loadHabits()
	if err != nil {
		return err
	}

	month := time.Now().In(loc)
	if flagMonth != "" {
		month, err = time.ParseInLocation("2006-01", flagMonth, loc)
		if err != nil {
			return fmt.Errorf("invalid --month %q, expected YYYY-MM", flagMonth)
		}
	}

	return printJSON(cmd, streaks.Calendar(habits, month))
}

func loadHabits() ([]*domain.Habit, *time.Location, error) {
	loc, err := time.LoadLocation(flagTimezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --tz: %w", err)
	}

	data, err := os.ReadFile(flagFile)
	if err != nil {
		return nil, nil, err
	}

	var habits []*domain.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", flagFile, err)
	}
	return habits, loc, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
