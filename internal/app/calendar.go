package app

import (
	"bytes"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	icsDateFormat  = "20060102"
	icsStampFormat = "20060102T150405Z"
	icsLineLimit   = 75
	icsAlarmOffset = "-P1D"
)

// Calendar accumulates collection events and serializes them as an iCalendar document
type Calendar struct {
	meta    Metadata
	events  []Event
	stamp   func() time.Time
	publish bool
}

// CalendarOption configures a Calendar
type CalendarOption func(*Calendar)

// WithStamp sets the clock used for DTSTAMP
func WithStamp(now func() time.Time) CalendarOption {
	return func(c *Calendar) {
		c.stamp = now
	}
}

// WithPublish marks the document as a subscription feed
func WithPublish() CalendarOption {
	return func(c *Calendar) {
		c.publish = true
	}
}

// NewCalendar creates an empty calendar with the given document metadata
func NewCalendar(meta Metadata, opts ...CalendarOption) *Calendar {
	c := &Calendar{meta: meta, stamp: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends an event; events are serialized in the order they were added
func (c *Calendar) Add(ev Event) {
	c.events = append(c.events, ev)
}

// Events returns a copy of the accumulated events
func (c *Calendar) Events() []Event {
	events := make([]Event, len(c.events))
	copy(events, c.events)
	return events
}

// Metadata returns the document metadata
func (c *Calendar) Metadata() Metadata {
	return c.meta
}

// Len returns the number of events
func (c *Calendar) Len() int {
	return len(c.events)
}

// WriteTo serializes the calendar as RFC 5545 text
func (c *Calendar) WriteTo(w io.Writer) (int64, error) {
	iw := &icsWriter{w: w}
	stamp := c.stamp().UTC().Format(icsStampFormat)

	iw.line("BEGIN", "VCALENDAR")
	iw.line("PRODID", escapeText(c.meta.ProductID))
	iw.line("VERSION", ICSVersion)
	iw.line("CALSCALE", "GREGORIAN")
	if c.publish {
		iw.line("METHOD", "PUBLISH")
		iw.line("X-PUBLISHED-TTL", ICSPublishTTL)
	}
	iw.line("NAME", escapeText(c.meta.Name))
	iw.line("X-WR-CALNAME", escapeText(c.meta.Name))
	iw.line("X-WR-TIMEZONE", escapeText(c.meta.Timezone))
	if c.meta.Description != "" {
		iw.line("DESCRIPTION", escapeText(c.meta.Description))
	}
	if c.meta.URL != "" {
		iw.line("URL;VALUE=URI", c.meta.URL)
	}

	for _, ev := range c.events {
		summary := escapeText(ICSSummaryPrefix + ev.Description)

		iw.line("BEGIN", "VEVENT")
		iw.line("UID", escapeText(ev.Identity().String()))
		iw.line("DTSTAMP", stamp)
		iw.line("DTSTART;VALUE=DATE", ev.Date.Format(icsDateFormat))
		iw.line("DTEND;VALUE=DATE", ev.Date.AddDate(0, 0, 1).Format(icsDateFormat))
		iw.line("SUMMARY", summary)
		iw.line("DESCRIPTION", escapeText(ev.Description))
		iw.line("BEGIN", "VALARM")
		iw.line("ACTION", "DISPLAY")
		iw.line("DESCRIPTION", summary)
		iw.line("TRIGGER", icsAlarmOffset)
		iw.line("END", "VALARM")
		iw.line("END", "VEVENT")
	}

	iw.line("END", "VCALENDAR")
	return iw.n, iw.err
}

// Bytes returns the serialized calendar
func (c *Calendar) Bytes() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	_, _ = c.WriteTo(&buf)
	return buf.Bytes()
}

// icsWriter writes folded content lines and keeps the first error
type icsWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (iw *icsWriter) line(name, value string) {
	if iw.err != nil {
		return
	}
	n, err := io.WriteString(iw.w, foldLine(name+":"+value))
	iw.n += int64(n)
	iw.err = err
}

// foldLine splits a content line into chunks of at most 75 octets, continuation
// lines starting with a single space, without breaking valid UTF-8 sequences.
func foldLine(s string) string {
	var b strings.Builder
	limit := icsLineLimit
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		// no rune start within the limit: the bytes are not valid UTF-8, split them as is
		if cut == 0 {
			cut = limit
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = icsLineLimit - 1
	}
	b.WriteString(s)
	b.WriteString("\r\n")
	return b.String()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// escapeText escapes a TEXT property value
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
