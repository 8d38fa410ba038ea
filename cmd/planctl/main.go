package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/calendar"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/planner"
	"github.com/sysu-ecnc-dev/leave-planner/backend/internal/utils"
)

type rootOptions struct {
	sources []string
	file    string
}

func (o *rootOptions) annotator() (calendar.Annotator, error) {
	cfg := &config.Config{}
	cfg.Calendar.Sources = o.sources
	cfg.Calendar.File = o.file
	cfg.Planner.Columns = planner.DefaultColumns
	if cfg.UsesSource(config.SourceDatabase) {
		return nil, fmt.Errorf("the %q source is only available to the server", config.SourceDatabase)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return calendar.Build(context.Background(), cfg, nil), nil
}

func parseRange(start, end string) (domain.DateKey, domain.DateKey, error) {
	s, err := domain.ParseDateKey(start)
	if err != nil {
		return domain.DateKey{}, domain.DateKey{}, fmt.Errorf("--start: %w", err)
	}
	e, err := domain.ParseDateKey(end)
	if err != nil {
		return domain.DateKey{}, domain.DateKey{}, fmt.Errorf("--end: %w", err)
	}
	return s, e, nil
}

// uniqueDays sorts days and drops repeats.
func uniqueDays(days []domain.DateKey) []domain.DateKey {
	slices.SortFunc(days, domain.DateKey.Compare)
	return slices.Compact(days)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "planctl",
		Short:         "Leave planner from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.sources, "sources", []string{config.SourceBelgium}, "calendar sources (stub, belgium, file)")
	cmd.PersistentFlags().StringVar(&opts.file, "file", "./data/calendar.txt", "calendar dataset for the file source")

	cmd.AddCommand(newDaysCmd(opts), newPlanCmd(opts))
	return cmd
}

func newDaysCmd(opts *rootOptions) *cobra.Command {
	var start, end string
	var weekdaysOnly bool

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List the days of a range with their description",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, e, err := parseRange(start, end)
			if err != nil {
				return err
			}
			annotator, err := opts.annotator()
			if err != nil {
				return err
			}

			view := planner.NewCalendarView(annotator, planner.NewSelectionStore(), planner.Labels{})
			for _, d := range planner.Enumerate(s, e, weekdaysOnly) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.Weekday().String()[:3], view.Describe(d, annotator.Annotate(d)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&weekdaysOnly, "weekdays-only", true, "skip Saturdays and Sundays")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var start, end, quota, full, half string
	var yearEnd bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Mark full and half days and print the resulting summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, e, err := parseRange(start, end)
			if err != nil {
				return err
			}
			fullDays, err := utils.ParseDateList(full)
			if err != nil {
				return fmt.Errorf("--full: %w", err)
			}
			halfDays, err := utils.ParseDateList(half)
			if err != nil {
				return fmt.Errorf("--half: %w", err)
			}
			fullDays, halfDays = uniqueDays(fullDays), uniqueDays(halfDays)
			for _, d := range halfDays {
				if slices.Contains(fullDays, d) {
					return fmt.Errorf("%s is listed in both --full and --half", d)
				}
			}
			annotator, err := opts.annotator()
			if err != nil {
				return err
			}

			p := planner.NewSession(annotator, planner.Options{EnforceYearEndBoundary: yearEnd, WeekdaysOnly: true})
			p.Submit(planner.Settings{Start: s, End: e, Quota: utils.ParseQuota(quota), WeekdaysOnly: true})

			out := cmd.OutOrStdout()
			for _, d := range fullDays {
				if _, ok := p.Activate(d, false); !ok {
					fmt.Fprintf(out, "skipped %s: not a working day in the range\n", d)
				}
			}
			for _, d := range halfDays {
				if _, ok := p.Activate(d, true); !ok {
					fmt.Fprintf(out, "skipped %s: not a working day in the range\n", d)
				}
			}

			summary := p.Summary()
			fmt.Fprintln(out, summary.Text())
			fmt.Fprintf(out, "Remaining days: %s\n", summary.RemainingDays)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&quota, "quota", "0", "leave allowance in days")
	cmd.Flags().StringVar(&full, "full", "", "comma separated full days")
	cmd.Flags().StringVar(&half, "half", "", "comma separated half days")
	cmd.Flags().BoolVar(&yearEnd, "year-end", false, "stop the range at 31 December of the start year")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
