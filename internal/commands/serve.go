package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/afval-ical/internal/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calendar subscriptions over HTTP",
		Long: `Starts an HTTP server that generates calendars on request, so calendar
applications can subscribe to a schedule:

  GET /api/calendar/{postal_code}/{house_number}?wasteTypes=gft,papier&format=ics
  GET /healthz
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDeps(opts)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			if address == "" {
				address = d.cfg.Server.Address
			}
			if !opts.debug {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(d.client, d.cfg.Calendar, d.log, server.NewMetrics())
			return srv.ListenAndServe(ctx, address)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default from config, :8080)")
	return cmd
}
