package commands

import (
	"fmt"

	"github.com/klabast/wb-services/afval-ical/internal/afvalwijzer"
	"github.com/klabast/wb-services/afval-ical/internal/app"
	"github.com/klabast/wb-services/afval-ical/internal/config"
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

// globalOptions holds the persistent flags shared by all commands
type globalOptions struct {
	cfgFile string
	debug   bool
}

// deps bundles what a command needs to fetch and build a calendar
type deps struct {
	cfg    *config.Config
	log    logger.Logger
	client *afvalwijzer.Client
}

func newDeps(opts *globalOptions) (*deps, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.debug {
		cfg.Logger.Level = "debug"
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &deps{
		cfg:    cfg,
		log:    log,
		client: afvalwijzer.NewClient(cfg.Source, log),
	}, nil
}

// schedule describes one calendar request taken from the positional arguments
type schedule struct {
	addr       afvalwijzer.Address
	wasteTypes []string
}

// parseSchedule validates "<postal_code> <house_number> [waste_types]"
func parseSchedule(args []string) (schedule, error) {
	if len(args) < 2 {
		return schedule{}, usageErrorf("postal code and house number are required")
	}
	if len(args) > 3 {
		return schedule{}, usageErrorf("too many arguments: %v", args[3:])
	}

	addr, err := afvalwijzer.ParseAddress(args[0], args[1])
	if err != nil {
		return schedule{}, &UsageError{Err: err}
	}

	s := schedule{addr: addr}
	if len(args) == 3 {
		s.wasteTypes = app.ParseWasteTypes(args[2])
	}
	return s, nil
}

// buildCalendar fetches the schedule page and runs it through the pipeline
func (d *deps) buildCalendar(s schedule) (*app.Calendar, error) {
	log := d.log.With(logger.String("address", s.addr.String()))
	if len(s.wasteTypes) > 0 {
		log = log.With(logger.Strings("waste_types", s.wasteTypes))
	}

	page, err := d.client.Fetch(s.addr)
	if err != nil {
		return nil, err
	}

	pipeline := app.NewPipeline(app.NewEntryParser(), log, app.WithWasteTypes(s.wasteTypes...))
	cal, stats := pipeline.Run(page, d.cfg.Calendar.Metadata(page.Title, d.client.URL(s.addr)))

	log.Info("Calendar generated",
		logger.Int("events", stats.Admitted),
		logger.Int("fragments", stats.Fragments))

	return cal, nil
}
