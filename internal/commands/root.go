// Package commands implements the afval-ical command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/afval-ical/internal/app"
)

// Version is the program version, overridden at build time
var Version = "dev"

const rootExample = `  afval-ical 1234AB 1A
  afval-ical 1234AB 1A gft,papier,pmd,restafval
  afval-ical 1234AB 1A gft,papier,pmd,restafval --output afval.ics`

// Execute runs the command line and returns the process exit code
func Execute() int {
	root := NewRootCommand()
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	errOut := root.ErrOrStderr()
	fmt.Fprintf(errOut, "Error: %v\n", err)
	if IsUsageError(err) {
		fmt.Fprintf(errOut, "\n%s", cmd.UsageString())
	}
	return 1
}

// NewRootCommand creates the afval-ical command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	var output, format string

	cmd := &cobra.Command{
		Use:   "afval-ical <postal_code> <house_number> [waste_types]",
		Short: "Convert a mijnafvalwijzer.nl schedule into an iCalendar feed",
		Long: `Fetches the waste collection schedule of a Dutch address from mijnafvalwijzer.nl
and prints it as an iCalendar document with one all-day event per collection,
each with a reminder one day before.

waste_types is an optional comma separated list (e.g. gft,papier,pmd,restafval);
when given only those waste streams are included.`,
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			_, err := parseSchedule(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.ValidFormat(format) {
				return usageErrorf("invalid format %q", format)
			}
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

			if output != "" {
				if err := app.WriteFile(output, cal, format); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Calendar exported to: %s\n", output)
				return nil
			}

			return app.Export(cmd.OutOrStdout(), cal, format)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml or ./config/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the calendar to this file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", app.FormatICS, "output format: ics, csv, json or yaml")

	cmd.AddCommand(newPreviewCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "afval-ical version %s\n", Version)
		},
	})

	return cmd
}
