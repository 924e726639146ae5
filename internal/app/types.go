package app

import (
	"fmt"
	"time"
)

// Fragment is one scraped schedule entry as found on the source page
type Fragment struct {
	// Marker is the anchor reference the waste type is derived from (e.g. "#waste-gft")
	Marker string `json:"marker"`
	// Class is the secondary classification attribute, used when Marker carries no tag
	Class string `json:"class"`
	// Text holds the human readable date, e.g. "dinsdag 10 juni"
	Text string `json:"text"`
	// Description is the waste stream label shown next to the date
	Description string `json:"description"`
}

// Page is the result of one fetch: the page title and its fragments in document order
type Page struct {
	Title     string     `json:"title"`
	Fragments []Fragment `json:"fragments"`
}

// Event represents a single waste collection event
type Event struct {
	Date        time.Time `json:"date"`
	WasteType   string    `json:"type"`
	Description string    `json:"description"`
}

// Identity returns the deduplication key of the event
func (e Event) Identity() Identity {
	return Identity{
		Year:      e.Date.Year(),
		YearDay:   e.Date.YearDay(),
		WasteType: e.WasteType,
	}
}

// Identity identifies a collection by date and waste type
type Identity struct {
	Year      int
	YearDay   int
	WasteType string
}

// String formats the identity as "<year>-<day of year>-<waste type>"; it doubles as the event UID
func (id Identity) String() string {
	return fmt.Sprintf("%d-%d-%s", id.Year, id.YearDay, id.WasteType)
}

// Metadata holds the document level fields of a calendar
type Metadata struct {
	ProductID   string
	Name        string
	Timezone    string
	Description string
	URL         string
}

// Stats counts what happened to the fragments of one pipeline run
type Stats struct {
	Fragments  int `json:"fragments"`
	Filtered   int `json:"filtered"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
	Admitted   int `json:"admitted"`
}
