package app

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern matches "<weekday> <day> <month> [<year>]", e.g. "dinsdag 10 juni 2025"
var datePattern = regexp.MustCompile(`([\p{L}\w]+) (\d+) ([\p{L}\w]+)(?: (\d+))?`)

// EntryParser turns fragments into collection events
type EntryParser struct {
	now func() time.Time
}

// ParserOption configures an EntryParser
type ParserOption func(*EntryParser)

// WithClock sets the clock used to fill in a missing year
func WithClock(now func() time.Time) ParserOption {
	return func(p *EntryParser) {
		p.now = now
	}
}

// NewEntryParser creates a parser that uses the wall clock unless WithClock is given
func NewEntryParser(opts ...ParserOption) *EntryParser {
	p := &EntryParser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WasteTypeOf derives the waste type tag of a fragment. The marker's "#" and
// "waste-" decoration is stripped; an empty or no-op marker falls back to the class.
func WasteTypeOf(f Fragment) string {
	tag := strings.ReplaceAll(f.Marker, "#", "")
	tag = strings.ReplaceAll(tag, "waste-", "")
	if tag == "" || tag == noopMarker {
		tag = f.Class
	}
	return strings.TrimSpace(tag)
}

// Parse converts a fragment into an event. It reports false when the fragment
// cannot be used: no date in the text, an unknown month name, an impossible
// day, or an empty waste type or description.
//
// A missing year is taken as the current year even when the date has already
// passed; schedules are not rolled over into next year.
func (p *EntryParser) Parse(f Fragment) (Event, bool) {
	wasteType := WasteTypeOf(f)
	description := strings.TrimSpace(f.Description)
	if wasteType == "" || description == "" {
		return Event{}, false
	}

	date, ok := p.parseDate(f.Text)
	if !ok {
		return Event{}, false
	}

	return Event{
		Date:        date,
		WasteType:   wasteType,
		Description: description,
	}, true
}

func (p *EntryParser) parseDate(text string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}

	month := MonthNumber(m[3])
	if month == 0 {
		return time.Time{}, false
	}

	year := p.now().Year()
	if m[4] != "" {
		if year, err = strconv.Atoi(m[4]); err != nil {
			return time.Time{}, false
		}
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 februari -> 3 maart); reject it instead
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, false
	}

	return date, true
}
