package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const exportDateFormat = "2006-01-02"

// exportEvent is the flat representation used by the CSV, JSON and YAML exporters
type exportEvent struct {
	UID         string `json:"uid" yaml:"uid"`
	Date        string `json:"date" yaml:"date"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

type exportDocument struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string        `json:"url,omitempty" yaml:"url,omitempty"`
	Events      []exportEvent `json:"events" yaml:"events"`
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "text/calendar; charset=utf-8"
	}
}

// ValidFormat reports whether the export format is supported
func ValidFormat(format string) bool {
	switch format {
	case FormatICS, FormatCSV, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Export writes the calendar in the requested format
func Export(w io.Writer, cal *Calendar, format string) error {
	switch format {
	case FormatICS, "":
		_, err := cal.WriteTo(w)
		return err
	case FormatCSV:
		return GenerateCSV(w, cal)
	case FormatJSON:
		return GenerateJSON(w, cal)
	case FormatYAML:
		return GenerateYAML(w, cal)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// GenerateCSV writes one row per event
func GenerateCSV(w io.Writer, cal *Calendar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Datum", "Afvaltype", "Omschrijving"}); err != nil {
		return err
	}
	for _, ev := range cal.events {
		if err := cw.Write([]string{ev.Date.Format(exportDateFormat), ev.WasteType, ev.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GenerateJSON writes the calendar as a JSON document
func GenerateJSON(w io.Writer, cal *Calendar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDoc(cal))
}

// GenerateYAML writes the calendar as a YAML document
func GenerateYAML(w io.Writer, cal *Calendar) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportDoc(cal)); err != nil {
		return err
	}
	return enc.Close()
}

func exportDoc(cal *Calendar) exportDocument {
	meta := cal.Metadata()
	doc := exportDocument{
		Name:        meta.Name,
		Description: meta.Description,
		URL:         meta.URL,
		Events:      make([]exportEvent, 0, len(cal.events)),
	}
	for _, ev := range cal.events {
		doc.Events = append(doc.Events, exportEvent{
			UID:         ev.Identity().String(),
			Date:        ev.Date.Format(exportDateFormat),
			Type:        ev.WasteType,
			Description: ev.Description,
		})
	}
	return doc
}
