package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/dateparse"
	"github.com/janeyeyey/mcal/internal/output"
)

func newMonthCommand(opts *globalOptions) *cobra.Command {
	var monthArg string
	var solutions []string
	var prev, next bool

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the month grid",
		Long:  "Show a month of the calendar as a six-week grid. Events spanning several days appear on every covered day; days outside the month pad the grid to full weeks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			year, month, err := dateparse.ParseMonth(monthArg, time.Now(), time.Local)
			if err != nil {
				return failWithHint(printer, contract.ErrInvalidUsage, err, "use YYYY-MM, +Nm, or -Nm")
			}
			if prev {
				year, month = calendar.PrevMonth(year, month)
			}
			if next {
				year, month = calendar.NextMonth(year, month)
			}
			sel, err := selectionFromFlags(printer, solutions)
			if err != nil {
				return err
			}

			events := loadSnapshot(cmd.Context(), printer, st, resolved.Verbose)
			view := buildMonthView(year, month, events, sel, resolved.ContinuationIncludesEnd)

			if printer.EffectiveSuccessMode() == output.ModePlain {
				renderMonthPlain(printer.OutWriter(), view)
				return nil
			}
			return printer.Success(view, map[string]any{
				"year":  year,
				"month": int(month),
			}, nil)
		},
	}

	cmd.Flags().StringVarP(&monthArg, "month", "m", "", "month to show (YYYY-MM, +Nm, -Nm; default the current month)")
	cmd.Flags().BoolVar(&prev, "prev", false, "shift the shown month back by one")
	cmd.Flags().BoolVar(&next, "next", false, "shift the shown month forward by one")
	cmd.Flags().StringArrayVarP(&solutions, "solution", "s", nil, "only show events for these solutions (repeatable)")
	return cmd
}

func newDayCommand(opts *globalOptions) *cobra.Command {
	var dayArg string
	var solutions []string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day's events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			date, err := dateparse.ParseDay(dayArg, time.Now(), time.Local)
			if err != nil {
				return failWithHint(printer, contract.ErrInvalidUsage, err, "use YYYY-MM-DD, today, tomorrow, yesterday, +Nd, or -Nd")
			}
			sel, err := selectionFromFlags(printer, solutions)
			if err != nil {
				return err
			}

			events := loadSnapshot(cmd.Context(), printer, st, resolved.Verbose)
			view := buildDayView(date, events, sel, resolved.ContinuationIncludesEnd)

			if printer.EffectiveSuccessMode() == output.ModePlain {
				renderDayPlain(printer.OutWriter(), view)
				return nil
			}
			return printer.Success(view, map[string]any{"count": len(view.Events)}, nil)
		},
	}

	cmd.Flags().StringVarP(&dayArg, "day", "d", "today", "day to show")
	cmd.Flags().StringArrayVarP(&solutions, "solution", "s", nil, "only show events for these solutions (repeatable)")
	return cmd
}

func selectionFromFlags(printer *output.Printer, raw []string) (calendar.Selection, error) {
	tags, err := parseSolutions(printer, raw)
	if err != nil {
		return calendar.Selection{}, err
	}
	return calendar.SomeSolutions(tags...), nil
}
