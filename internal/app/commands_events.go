package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/dateparse"
	"github.com/janeyeyey/mcal/internal/output"
	"github.com/janeyeyey/mcal/internal/store"
)

func newEventsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and manage events",
	}
	cmd.AddCommand(
		newEventsListCommand(opts),
		newEventsShowCommand(opts),
		newEventsQueryCommand(opts),
		newEventsAddCommand(opts),
		newEventsUpdateCommand(opts),
		newEventsDeleteCommand(opts),
		newEventsRescheduleCommand(opts),
	)
	return cmd
}

func newEventsListCommand(opts *globalOptions) *cobra.Command {
	var (
		from, to  string
		solutions []string
		sortBy    string
		order     string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			events, err := st.List(cmd.Context())
			if err != nil {
				return failWithHint(printer, contract.ErrStoreUnavailable, err, "check --store and --data, or run `mcal doctor`")
			}

			sel, err := selectionFromFlags(printer, solutions)
			if err != nil {
				return err
			}
			events = sel.Apply(events)

			if from != "" {
				t, err := dateparse.ParseDay(from, time.Now(), time.Local)
				if err != nil {
					return failWithHint(printer, contract.ErrInvalidUsage, err, "--from takes YYYY-MM-DD or a day selector")
				}
				events = filterEvents(events, func(ev contract.Event) bool {
					end, err := calendar.ParseKey(ev.EndKey())
					return err == nil && !end.Before(t)
				})
			}
			if to != "" {
				t, err := dateparse.ParseDay(to, time.Now(), time.Local)
				if err != nil {
					return failWithHint(printer, contract.ErrInvalidUsage, err, "--to takes YYYY-MM-DD or a day selector")
				}
				events = filterEvents(events, func(ev contract.Event) bool {
					start, err := calendar.ParseKey(ev.Date)
					return err == nil && !start.After(t)
				})
			}

			if err := sortEvents(events, sortBy, order); err != nil {
				return failWithHint(printer, contract.ErrInvalidUsage, err, "--sort takes date, title, or solution; --order takes asc or desc")
			}
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}

			return printer.Success(events, map[string]any{"count": len(events)}, nil)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "only events ending on or after this day")
	cmd.Flags().StringVar(&to, "to", "", "only events starting on or before this day")
	cmd.Flags().StringArrayVarP(&solutions, "solution", "s", nil, "only events for these solutions (repeatable)")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort key: date, title, or solution")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order: asc or desc")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of events to print (0 for all)")
	return cmd
}

func newEventsShowCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			ev, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return storeFailure(printer, err, args[0])
			}
			return printer.Success(ev, nil, nil)
		},
	}
	return cmd
}

func newEventsQueryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <term>...",
		Short: "Query events with field predicates",
		Long: "Query events with field predicates, ANDed together.\n" +
			"Terms look like field<op>value: title~launch, solution=Security,\n" +
			"date>=2024-03-01, location!=Seoul Office.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			preds, err := parseQuery(args)
			if err != nil {
				return failWithHint(printer, contract.ErrInvalidUsage, err, "terms look like solution=Security or date>=2024-03-01")
			}
			events, err := st.List(cmd.Context())
			if err != nil {
				return failWithHint(printer, contract.ErrStoreUnavailable, err, "check --store and --data, or run `mcal doctor`")
			}
			var matched []contract.Event
			for _, ev := range events {
				ok, err := matchEvent(ev, preds)
				if err != nil {
					return failWithHint(printer, contract.ErrInvalidUsage, err, "date values must be YYYY-MM-DD")
				}
				if ok {
					matched = append(matched, ev)
				}
			}
			return printer.Success(matched, map[string]any{"count": len(matched), "scanned": len(events)}, nil)
		},
	}
	return cmd
}

func newEventsAddCommand(opts *globalOptions) *cobra.Command {
	var (
		ev     contract.Event
		sol    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if err := requireEditable(printer, st, resolved); err != nil {
				return err
			}

			ev.Solution = contract.Solution(sol)
			normalizeDates(&ev)
			if err := store.ValidateEvent(ev); err != nil {
				return failWithHint(printer, contract.ErrValidation, err, "see `mcal events add --help` for the required fields")
			}

			if dryRun {
				return printer.Success(ev, map[string]any{"dryRun": true}, nil)
			}

			created, err := st.Add(cmd.Context(), ev)
			if err != nil {
				return storeFailure(printer, err, "")
			}
			appendJournal(resolved, journalEntry{
				At: time.Now().UTC(), Type: "add", EventID: created.ID, Next: created,
			}, warnTo(printer))
			return printer.Success(created, nil, nil)
		},
	}

	f := cmd.Flags()
	f.StringVar(&ev.Title, "title", "", "event title (required)")
	f.StringVar(&sol, "solution", "", "solution tag (required)")
	f.StringVar(&ev.Date, "date", "", "start date YYYY-MM-DD (required)")
	f.StringVar(&ev.EndDate, "end-date", "", "inclusive end date for multi-day events")
	f.StringVar(&ev.Time, "time", "", "display time, free text")
	f.StringVar(&ev.Location, "location", "", "location (required; presets: "+strings.Join(contract.PresetLocations, ", ")+")")
	f.StringVar(&ev.RegPageURL, "reg-url", "", "registration page URL")
	f.StringVar(&ev.VivaEngageURL, "viva-url", "", "Viva Engage post URL")
	f.BoolVar(&dryRun, "dry-run", false, "validate and print without saving")
	return cmd
}

func newEventsUpdateCommand(opts *globalOptions) *cobra.Command {
	var (
		patch contract.Event
		sol   string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if err := requireEditable(printer, st, resolved); err != nil {
				return err
			}

			current, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return storeFailure(printer, err, args[0])
			}

			next := *current
			set := func(name string, fn func()) {
				if cmd.Flags().Changed(name) {
					fn()
				}
			}
			set("title", func() { next.Title = patch.Title })
			set("solution", func() { next.Solution = contract.Solution(sol) })
			set("date", func() { next.Date = patch.Date })
			set("end-date", func() { next.EndDate = patch.EndDate })
			set("time", func() { next.Time = patch.Time })
			set("location", func() { next.Location = patch.Location })
			set("reg-url", func() { next.RegPageURL = patch.RegPageURL })
			set("viva-url", func() { next.VivaEngageURL = patch.VivaEngageURL })

			normalizeDates(&next)
			if err := store.ValidateEvent(next); err != nil {
				return failWithHint(printer, contract.ErrValidation, err, "the patched event must still be valid")
			}

			updated, err := st.Update(cmd.Context(), next)
			if err != nil {
				return storeFailure(printer, err, args[0])
			}
			appendJournal(resolved, journalEntry{
				At: time.Now().UTC(), Type: "update", EventID: updated.ID, Prev: current, Next: updated,
			}, warnTo(printer))
			return printer.Success(updated, nil, nil)
		},
	}

	f := cmd.Flags()
	f.StringVar(&patch.Title, "title", "", "new title")
	f.StringVar(&sol, "solution", "", "new solution tag")
	f.StringVar(&patch.Date, "date", "", "new start date YYYY-MM-DD")
	f.StringVar(&patch.EndDate, "end-date", "", "new inclusive end date (empty string clears it)")
	f.StringVar(&patch.Time, "time", "", "new display time")
	f.StringVar(&patch.Location, "location", "", "new location")
	f.StringVar(&patch.RegPageURL, "reg-url", "", "new registration page URL")
	f.StringVar(&patch.VivaEngageURL, "viva-url", "", "new Viva Engage post URL")
	return cmd
}

func newEventsDeleteCommand(opts *globalOptions) *cobra.Command {
	var (
		force   bool
		confirm string
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if err := requireEditable(printer, st, resolved); err != nil {
				return err
			}

			id := args[0]
			current, err := st.Get(cmd.Context(), id)
			if err != nil {
				return storeFailure(printer, err, id)
			}

			if !force {
				if confirm != "" {
					if confirm != id {
						return failWithHint(printer, contract.ErrInvalidUsage,
							fmt.Errorf("--confirm %q does not match event id %q", confirm, id),
							"pass the exact id, or --force to skip confirmation")
					}
				} else {
					if resolved.NoInput || !stdinInteractive() {
						return failWithHint(printer, contract.ErrInvalidUsage,
							errors.New("refusing to delete without confirmation"),
							"pass --force, or --confirm <id>")
					}
					ok, err := promptConfirmID(cmd.InOrStdin(), printer.ErrWriter(), id)
					if err != nil {
						return failWithHint(printer, contract.ErrGeneric, err, "")
					}
					if !ok {
						return failWithHint(printer, contract.ErrInvalidUsage,
							errors.New("confirmation did not match; nothing deleted"), "")
					}
				}
			}

			if err := st.Delete(cmd.Context(), id); err != nil {
				return storeFailure(printer, err, id)
			}
			appendJournal(resolved, journalEntry{
				At: time.Now().UTC(), Type: "delete", EventID: id, Prev: current,
			}, warnTo(printer))
			return printer.Success(map[string]any{"deleted": id}, nil, nil)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without confirmation")
	cmd.Flags().StringVar(&confirm, "confirm", "", "confirm by repeating the event id")
	return cmd
}

func newEventsRescheduleCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule <id> <new-start>",
		Short: "Move an event to a new start date",
		Long:  "Move an event to a new start date. Multi-day events keep their length in days; single-day events stay single-day.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			if err := requireEditable(printer, st, resolved); err != nil {
				return err
			}

			id := args[0]
			target, err := dateparse.ParseDay(args[1], time.Now(), time.Local)
			if err != nil {
				return failWithHint(printer, contract.ErrInvalidUsage, err, "the new start takes YYYY-MM-DD or a day selector")
			}
			newStart := calendar.FormatKey(target)

			current, err := st.Get(cmd.Context(), id)
			if err != nil {
				return storeFailure(printer, err, id)
			}

			if current.Date == newStart {
				return printer.Success(current, map[string]any{"moved": false}, []string{"event already starts on " + newStart})
			}

			moved, err := calendar.Reschedule(*current, newStart)
			if err != nil {
				return failWithHint(printer, contract.ErrValidation, err, "")
			}
			updated, err := st.Update(cmd.Context(), moved)
			if err != nil {
				return storeFailure(printer, err, id)
			}
			appendJournal(resolved, journalEntry{
				At: time.Now().UTC(), Type: "reschedule", EventID: id, Prev: current, Next: updated,
			}, warnTo(printer))

			if printer.EffectiveSuccessMode() == output.ModePlain && !resolved.Quiet {
				fmt.Fprintf(printer.OutWriter(), "moved %q to %s\n", updated.Title, strftime.Format("%A, %B %d, %Y", target))
				if updated.MultiDay() {
					fmt.Fprintf(printer.OutWriter(), "now runs %s to %s\n", updated.Date, updated.EndDate)
				}
				return nil
			}
			return printer.Success(updated, map[string]any{"moved": true}, nil)
		},
	}
	return cmd
}

// normalizeDates collapses a degenerate range so single-day events always
// store an empty endDate, like the hosted document does.
func normalizeDates(ev *contract.Event) {
	if ev.EndDate == ev.Date {
		ev.EndDate = ""
	}
}

func storeFailure(printer *output.Printer, err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		notFound := fmt.Errorf("no event with id %q", id)
		return failWithHint(printer, contract.ErrNotFound, notFound, "run `mcal events list` to see ids")
	}
	if errors.Is(err, store.ErrReadOnly) {
		return failWithHint(printer, contract.ErrReadOnly, err, "edit the hosted file instead: run `mcal edit-url`")
	}
	return failWithHint(printer, contract.ErrStoreUnavailable, err, "run `mcal doctor`")
}

func warnTo(printer *output.Printer) func(string) {
	return func(msg string) {
		fmt.Fprintln(printer.ErrWriter(), "warning: "+msg)
	}
}

func filterEvents(events []contract.Event, keep func(contract.Event) bool) []contract.Event {
	out := events[:0:0]
	for _, ev := range events {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return out
}

func sortEvents(events []contract.Event, key, order string) error {
	var less func(a, b contract.Event) bool
	switch key {
	case "", "date":
		less = func(a, b contract.Event) bool { return a.Date < b.Date }
	case "title":
		less = func(a, b contract.Event) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case "solution":
		less = func(a, b contract.Event) bool { return a.Solution < b.Solution }
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}
	switch order {
	case "", "asc":
	case "desc":
		inner := less
		less = func(a, b contract.Event) bool { return inner(b, a) }
	default:
		return fmt.Errorf("unknown sort order %q", order)
	}
	sort.SliceStable(events, func(i, j int) bool { return less(events[i], events[j]) })
	return nil
}
