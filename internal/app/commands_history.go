package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janeyeyey/mcal/internal/contract"
	"github.com/janeyeyey/mcal/internal/output"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	var (
		limit int
		page  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes to the calendar",
		Long:  "Show recent changes to the calendar, newest first. Every add, update, delete, and reschedule made through mcal is recorded; edits made directly to the events file are not.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, _, resolved, err := buildContext(cmd, opts)
			if err != nil {
				return err
			}

			j := openJournal(resolved.journalPath())
			entries, skipped, err := j.readPage(limit, page)
			if err != nil {
				return failWithHint(printer, contract.ErrGeneric, err, "")
			}
			var warnings []string
			if skipped > 0 {
				warnings = append(warnings, fmt.Sprintf("skipped %d malformed history lines", skipped))
			}

			if printer.EffectiveSuccessMode() == output.ModePlain {
				w := printer.OutWriter()
				if len(entries) == 0 {
					if !resolved.Quiet {
						fmt.Fprintln(w, "no history")
					}
					return nil
				}
				for _, e := range entries {
					line := fmt.Sprintf("%s  %-10s %s", e.At.Local().Format("2006-01-02 15:04"), e.Type, e.EventID)
					if e.Next != nil {
						line += "  " + e.Next.Title
					} else if e.Prev != nil {
						line += "  " + e.Prev.Title
					}
					fmt.Fprintln(w, line)
				}
				for _, warning := range warnings {
					fmt.Fprintln(printer.ErrWriter(), "warning: "+warning)
				}
				return nil
			}
			return printer.Success(entries, map[string]any{
				"count": len(entries),
				"page":  page,
			}, warnings)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries per page")
	cmd.Flags().IntVar(&page, "page", 0, "page number, newest first")
	return cmd
}
