package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/afval-ical/internal/afvalwijzer"
	"github.com/klabast/wb-services/afval-ical/internal/app"
	"github.com/klabast/wb-services/afval-ical/internal/config"
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

type stubFetcher struct {
	page  app.Page
	err   error
	addrs []afvalwijzer.Address
}

func (f *stubFetcher) Fetch(addr afvalwijzer.Address) (app.Page, error) {
	f.addrs = append(f.addrs, addr)
	return f.page, f.err
}

func (f *stubFetcher) URL(addr afvalwijzer.Address) string {
	return addr.URL("https://example.org/nl")
}

func testServer(t *testing.T, fetcher *stubFetcher) (*Server, *Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := NewMetrics()
	s := New(fetcher, config.CalendarConfig{
		Name:      app.ICSCalendarName,
		Timezone:  app.ICSTimezone,
		ProductID: app.ICSProductID,
	}, logger.NewNop(), metrics)
	s.newParser = func() *app.EntryParser {
		return app.NewEntryParser(app.WithClock(func() time.Time {
			return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		}))
	}
	return s, metrics
}

func schedulePage() app.Page {
	return app.Page{
		Title: "Afvalkalender 1234AB 1",
		Fragments: []app.Fragment{
			{Marker: "#waste-gft", Text: "dinsdag 10 juni", Description: "GFT"},
			{Marker: "#waste-gft", Text: "dinsdag 10 juni", Description: "GFT"},
			{Marker: "#waste-papier", Text: "woensdag 11 juni", Description: "Papier"},
			{Marker: "#waste-pmd", Text: "invalid entry", Description: "PMD"},
		},
	}
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHandleCalendar_ICS(t *testing.T) {
	fetcher := &stubFetcher{page: schedulePage()}
	s, metrics := testServer(t, fetcher)

	w := get(t, s, "/api/calendar/1234AB/1A")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	// Subscription should NOT have Content-Disposition attachment header
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "METHOD:PUBLISH\r\n")
	assert.Contains(t, body, "DESCRIPTION:Afvalkalender 1234AB 1\r\n")
	assert.Contains(t, body, "URL;VALUE=URI:https://example.org/nl/1234AB/1/A\r\n")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "UID:2025-161-gft\r\n")

	require.Len(t, fetcher.addrs, 1)
	assert.Equal(t, afvalwijzer.Address{PostalCode: "1234AB", HouseNumber: "1", Suffix: "A"}, fetcher.addrs[0])

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Fragments.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fragments.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fragments.WithLabelValues("skipped")))
}

func TestHandleCalendar_WasteTypeFilter(t *testing.T) {
	s, _ := testServer(t, &stubFetcher{page: schedulePage()})

	w := get(t, s, "/api/calendar/1234AB/1?wasteTypes=papier&format=csv")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "Datum,Afvaltype,Omschrijving\n2025-06-11,papier,Papier\n", w.Body.String())
}

func TestHandleCalendar_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		fetchErr error
		wantCode int
		wantBody string
	}{
		{name: "invalid format", target: "/api/calendar/1234AB/1?format=pdf", wantCode: http.StatusBadRequest, wantBody: ErrInvalidFormat},
		{name: "invalid house number", target: "/api/calendar/1234AB/A1", wantCode: http.StatusBadRequest, wantBody: ErrInvalidHouseNumber},
		{name: "fetch failure", target: "/api/calendar/1234AB/1", fetchErr: app.ErrFetch, wantCode: http.StatusBadGateway, wantBody: ErrFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, metrics := testServer(t, &stubFetcher{page: schedulePage(), err: tt.fetchErr})

			w := get(t, s, tt.target)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())

			if errors.Is(tt.fetchErr, app.ErrFetch) {
				assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchErrors))
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	s, _ := testServer(t, &stubFetcher{})

	w := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t, &stubFetcher{page: schedulePage()})
	get(t, s, "/api/calendar/1234AB/1")

	w := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `afval_ical_fragments_total{result="admitted"} 2`)
}
