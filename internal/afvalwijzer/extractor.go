package afvalwijzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/klabast/wb-services/afval-ical/internal/app"
)

const (
	// fragmentSelector selects the schedule entries on the page
	fragmentSelector = "a.wasteInfoIcon.textDecorationNone"
	// descriptionSelector selects the waste stream label inside an entry
	descriptionSelector = "span.afvaldescr"
)

// ExtractPage parses a schedule page and returns its title and fragments in document order.
// Only the schedule entries are inspected; the rest of the page is ignored.
func ExtractPage(r io.Reader) (app.Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return app.Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := app.Page{
		Title:     cleanText(doc.Find("title").First().Text()),
		Fragments: []app.Fragment{},
	}

	doc.Find(fragmentSelector).Each(func(_ int, s *goquery.Selection) {
		page.Fragments = append(page.Fragments, extractFragment(s))
	})

	return page, nil
}

func extractFragment(s *goquery.Selection) app.Fragment {
	href, _ := s.Attr("href")

	p := s.Find("p").First()
	var class string
	if classes := strings.Fields(p.AttrOr("class", "")); len(classes) > 0 {
		class = classes[0]
	}

	description := cleanText(p.Find(descriptionSelector).First().Text())
	if description == "" {
		description = cleanText(s.Find(descriptionSelector).First().Text())
	}

	// The date text is the paragraph without the description label
	text := p.Clone()
	text.Find(descriptionSelector).Remove()

	return app.Fragment{
		Marker:      strings.TrimSpace(href),
		Class:       class,
		Text:        cleanText(text.Text()),
		Description: description,
	}
}

// cleanText replaces invalid UTF-8 with U+FFFD, NFC-normalizes s and collapses
// runs of whitespace into single spaces
func cleanText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
