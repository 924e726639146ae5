// Package server exposes generated waste calendars over HTTP so calendar
// applications can subscribe to them.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/klabast/wb-services/afval-ical/internal/afvalwijzer"
	"github.com/klabast/wb-services/afval-ical/internal/app"
	"github.com/klabast/wb-services/afval-ical/internal/config"
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

// Error messages
const (
	ErrInvalidHouseNumber = "Invalid house number"
	ErrInvalidFormat      = "Invalid format"
	ErrFetchFailed        = "Failed to fetch schedule"
	ErrInternalServer     = "Internal server error"
)

const shutdownTimeout = 10 * time.Second

// PageFetcher retrieves the schedule page of an address
type PageFetcher interface {
	Fetch(addr afvalwijzer.Address) (app.Page, error)
	URL(addr afvalwijzer.Address) string
}

// Server serves calendar subscriptions
type Server struct {
	fetcher   PageFetcher
	calendar  config.CalendarConfig
	log       logger.Logger
	metrics   *Metrics
	newParser func() *app.EntryParser
}

// New creates a subscription server
func New(fetcher PageFetcher, calendar config.CalendarConfig, log logger.Logger, metrics *Metrics) *Server {
	return &Server{
		fetcher:   fetcher,
		calendar:  calendar,
		log:       log,
		metrics:   metrics,
		newParser: func() *app.EntryParser { return app.NewEntryParser() },
	}
}

// Router returns the HTTP routes of the server
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.HandleHealth)
	r.GET("/api/calendar/:postal/:house", s.HandleCalendar)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	return r
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting subscription server", logger.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("Shutting down subscription server")
		return srv.Shutdown(shutdownCtx)
	}
}

// HandleHealth reports that the server is up
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleCalendar fetches the schedule of an address and returns it as a calendar
// URL: /api/calendar/{postal}/{house}?wasteTypes=gft,papier&format=ics
func (s *Server) HandleCalendar(c *gin.Context) {
	format := c.DefaultQuery("format", app.FormatICS)
	if !app.ValidFormat(format) {
		c.String(http.StatusBadRequest, ErrInvalidFormat)
		return
	}

	addr, err := afvalwijzer.ParseAddress(c.Param("postal"), c.Param("house"))
	if err != nil {
		c.String(http.StatusBadRequest, ErrInvalidHouseNumber)
		return
	}

	log := s.log.With(logger.String("address", addr.String()))

	page, err := s.fetcher.Fetch(addr)
	if err != nil {
		s.metrics.FetchErrors.Inc()
		log.Error("Error fetching schedule", logger.Error(err))
		c.String(http.StatusBadGateway, ErrFetchFailed)
		return
	}

	pipeline := app.NewPipeline(s.newParser(), log,
		app.WithWasteTypes(app.ParseWasteTypes(c.Query("wasteTypes"))...),
		app.WithCalendarOptions(app.WithPublish()),
	)
	cal, stats := pipeline.Run(page, s.calendar.Metadata(page.Title, s.fetcher.URL(addr)))
	s.metrics.Record(stats)

	var buf bytes.Buffer
	if err := app.Export(&buf, cal, format); err != nil {
		log.Error("Error exporting calendar", logger.Error(err))
		c.String(http.StatusInternalServerError, ErrInternalServer)
		return
	}

	// No Content-Disposition header: calendar apps need inline content for subscriptions
	c.Data(http.StatusOK, app.ContentType(format), buf.Bytes())
}
