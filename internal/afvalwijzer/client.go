package afvalwijzer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/klabast/wb-services/afval-ical/internal/app"
	"github.com/klabast/wb-services/afval-ical/internal/logger"
)

// Default client settings
const (
	DefaultBaseURL   = "https://www.mijnafvalwijzer.nl/nl"
	DefaultUserAgent = "afval-ical/1.0 (+https://github.com/klabast/wb-services)"
	DefaultTimeout   = 30 * time.Second
)

// Config holds the settings of the schedule client
type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SetDefaults applies default values to the config if not set
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Client fetches schedule pages. Every Fetch issues exactly one request; there are no retries.
type Client struct {
	cfg Config
	log logger.Logger
}

// NewClient creates a schedule client
func NewClient(cfg Config, log logger.Logger) *Client {
	cfg.SetDefaults()
	return &Client{cfg: cfg, log: log}
}

// URL returns the schedule page URL for an address
func (c *Client) URL(addr Address) string {
	return addr.URL(c.cfg.BaseURL)
}

// Fetch retrieves and extracts the schedule page of an address. Transport
// failures and non-2xx responses are reported as app.ErrFetch.
func (c *Client) Fetch(addr Address) (app.Page, error) {
	pageURL := c.URL(addr)

	collector := colly.NewCollector(
		colly.UserAgent(c.cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	collector.SetRequestTimeout(c.cfg.Timeout)

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		c.log.Debug("Fetched schedule page",
			logger.String("url", r.Request.URL.String()),
			logger.Int("status", r.StatusCode),
			logger.Int("bytes", len(r.Body)))
		body = r.Body
	})

	if err := collector.Visit(pageURL); err != nil {
		return app.Page{}, fmt.Errorf("%w: %s: %w", app.ErrFetch, pageURL, err)
	}

	page, err := ExtractPage(bytes.NewReader(body))
	if err != nil {
		return app.Page{}, fmt.Errorf("%w: %s: %w", app.ErrFetch, pageURL, err)
	}

	c.log.Debug("Extracted schedule fragments",
		logger.String("url", pageURL),
		logger.Int("fragments", len(page.Fragments)))

	return page, nil
}
