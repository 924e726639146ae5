package app

import (
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

// Pipeline turns the fragments of one page into a calendar
type Pipeline struct {
	parser      *EntryParser
	log         logger.Logger
	wasteTypes  map[string]struct{}
	calendarOpt []CalendarOption
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithWasteTypes restricts the calendar to the given waste types. No types means no filtering.
func WithWasteTypes(types ...string) PipelineOption {
	return func(p *Pipeline) {
		for _, t := range types {
			if t != "" {
				p.wasteTypes[t] = struct{}{}
			}
		}
	}
}

// WithCalendarOptions passes options to every calendar the pipeline builds
func WithCalendarOptions(opts ...CalendarOption) PipelineOption {
	return func(p *Pipeline) {
		p.calendarOpt = append(p.calendarOpt, opts...)
	}
}

// NewPipeline creates a pipeline around the given parser
func NewPipeline(parser *EntryParser, log logger.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		parser:     parser,
		log:        log,
		wasteTypes: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Accepts reports whether a waste type passes the filter
func (p *Pipeline) Accepts(wasteType string) bool {
	if len(p.wasteTypes) == 0 {
		return true
	}
	_, ok := p.wasteTypes[wasteType]
	return ok
}

// Run processes the fragments in document order. Unusable fragments are
// skipped; a page without fragments yields an empty calendar.
func (p *Pipeline) Run(page Page, meta Metadata) (*Calendar, Stats) {
	cal := NewCalendar(meta, p.calendarOpt...)
	dedup := NewDeduplicator()
	stats := Stats{Fragments: len(page.Fragments)}

	for i, f := range page.Fragments {
		if !p.Accepts(WasteTypeOf(f)) {
			stats.Filtered++
			continue
		}

		ev, ok := p.parser.Parse(f)
		if !ok {
			stats.Skipped++
			p.log.Debug("Skipping unparsable fragment",
				logger.Int("index", i),
				logger.String("marker", f.Marker),
				logger.String("text", f.Text))
			continue
		}

		if !dedup.Admit(ev) {
			stats.Duplicates++
			continue
		}

		cal.Add(ev)
		stats.Admitted++
	}

	p.log.Debug("Pipeline finished",
		logger.Int("fragments", stats.Fragments),
		logger.Int("admitted", stats.Admitted),
		logger.Int("unique", dedup.Len()),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("skipped", stats.Skipped),
		logger.Int("filtered", stats.Filtered))

	return cal, stats
}
