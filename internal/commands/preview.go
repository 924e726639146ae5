package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/afval-ical/internal/app"
)

func newPreviewCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <postal_code> <house_number> [waste_types]",
		Short: "Show the collection dates as a table",
		Long: `Fetches the schedule like the root command but prints the events as a table.
When stdout is not a terminal the table is printed as CSV.`,
		Example: "  afval-ical preview 1234AB 1A gft,papier",
		Args: func(_ *cobra.Command, args []string) error {
			_, err := parseSchedule(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSchedule(args)
			if err != nil {
				return err
			}

			d, err := newDeps(opts)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			cal, err := d.buildCalendar(s)
			if err != nil {
				return err
			}

			return RenderTable(cmd.OutOrStdout(), cal)
		},
	}
}

// RenderTable writes the calendar events as a table; CSV when w is not a terminal
func RenderTable(w io.Writer, cal *app.Calendar) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Datum", "Dag", "Afvaltype", "Omschrijving", "UID"})

	for _, ev := range cal.Events() {
		t.AppendRow(table.Row{
			ev.Date.Format("2006-01-02"),
			dutchWeekdays[ev.Date.Weekday()],
			ev.WasteType,
			ev.Description,
			ev.Identity().String(),
		})
	}

	var out string
	if isTerminal(w) {
		t.AppendFooter(table.Row{"", "", "", "Totaal", cal.Len()})
		out = t.Render()
	} else {
		out = t.RenderCSV()
	}

	_, err := fmt.Fprintln(w, out)
	return err
}

var dutchWeekdays = [...]string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
