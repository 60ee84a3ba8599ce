package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/calendar"
	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/output"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar",
	}
	cmd.AddCommand(newExportJSONCommand(opts), newExportICSCommand(opts))
	return cmd
}

func newExportJSONCommand(opts *globalOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export all events as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			events, err := st.List(cmd.Context())
			if err != nil {
				return failWithHint(printer, contract.ErrStoreUnavailable, err, "run `mcal doctor`")
			}
			if events == nil {
				events = []contract.Event{}
			}

			raw, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return failWithHint(printer, contract.ErrGeneric, err, "")
			}
			raw = append(raw, '\n')

			if outPath == "" || outPath == "-" {
				_, err := printer.OutWriter().Write(raw)
				return err
			}
			if err := os.WriteFile(outPath, raw, 0o644); err != nil {
				return failWithHint(printer, contract.ErrGeneric, err, "")
			}
			return printer.Success(map[string]any{
				"path":   outPath,
				"events": len(events),
				"size":   humanize.Bytes(uint64(len(raw))),
			}, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newExportICSCommand(opts *globalOptions) *cobra.Command {
	var outPath string
	var solutions []string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export events as an iCalendar file",
		Long:  "Export events as an iCalendar file. Events become all-day entries; multi-day events use an exclusive DTEND one day past the stored inclusive end.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, st, _, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			events, err := st.List(cmd.Context())
			if err != nil {
				return failWithHint(printer, contract.ErrStoreUnavailable, err, "run `mcal doctor`")
			}
			sel, err := selectionFromFlags(printer, solutions)
			if err != nil {
				return err
			}
			events = sel.Apply(events)

			cal := ics.NewCalendar()
			cal.SetMethod(ics.MethodPublish)
			cal.SetProductId("-//mcal//marketing calendar//EN")

			now := time.Now().UTC()
			exported, skipped := 0, 0
			for _, ev := range events {
				start, err := calendar.ParseKey(ev.Date)
				if err != nil {
					skipped++
					continue
				}
				end, err := calendar.ParseKey(ev.EndKey())
				if err != nil {
					skipped++
					continue
				}

				ve := cal.AddEvent(ev.ID + "@mcal")
				ve.SetDtStampTime(now)
				ve.SetAllDayStartAt(start)
				ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
				ve.SetSummary(ev.Title)
				if ev.Location != "" {
					ve.SetLocation(ev.Location)
				}
				if ev.RegPageURL != "" {
					ve.SetURL(ev.RegPageURL)
				}
				if ev.Time != "" {
					ve.SetDescription("Time: " + ev.Time)
				}
				exported++
			}

			serialized := cal.Serialize()
			var warnings []string
			if skipped > 0 {
				warnings = append(warnings, fmt.Sprintf("skipped %d events with malformed dates", skipped))
			}

			if outPath == "" || outPath == "-" {
				fmt.Fprint(printer.OutWriter(), serialized)
				for _, w := range warnings {
					fmt.Fprintln(printer.ErrWriter(), "warning: "+w)
				}
				return nil
			}
			if err := os.WriteFile(outPath, []byte(serialized), 0o644); err != nil {
				return failWithHint(printer, contract.ErrGeneric, err, "")
			}
			return printer.Success(map[string]any{
				"path":   outPath,
				"events": exported,
				"size":   humanize.Bytes(uint64(len(serialized))),
			}, nil, warnings)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringArrayVarP(&solutions, "solution", "s", nil, "only export events for these solutions (repeatable)")
	return cmd
}

func newEditURLCommand(opts *globalOptions) *cobra.Command {
	var openBrowser bool

	cmd := &cobra.Command{
		Use:   "edit-url",
		Short: "Print the hosted editor URL for the events file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, _, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}
			url := resolved.EditURL
			if openBrowser {
				if err := openInBrowser(url); err != nil {
					fmt.Fprintf(printer.ErrWriter(), "warning: could not open a browser: %v\n", err)
				}
			}
			if printer.EffectiveSuccessMode() == output.ModePlain {
				fmt.Fprintln(printer.OutWriter(), url)
				return nil
			}
			return printer.Success(map[string]any{"url": url}, nil, nil)
		},
	}

	cmd.Flags().BoolVar(&openBrowser, "open", false, "also open the URL in a browser")
	return cmd
}

func openInBrowser(url string) error {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name = "rundll32"
	default:
		name = "xdg-open"
	}
	if runtime.GOOS == "windows" {
		return exec.Command(name, "url.dll,FileProtocolHandler", url).Start()
	}
	return exec.Command(name, url).Start()
}
