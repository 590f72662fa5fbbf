// Package scraper fetches avherald.com listing pages and turns their
// headlines into incident records.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"avherald_scraper/internal/headline"
	"avherald_scraper/internal/incident"
	"avherald_scraper/internal/observability"
)

// ErrAccessBlocked indicates the site returned its IP-block page instead of
// the headline listing. Retrying from the same address will not help.
var ErrAccessBlocked = errors.New("avherald.com returned an access-block page for this IP")

// blockIndicators must all appear (case-insensitively) in a response before
// it is treated as a block page.
var blockIndicators = []string{
	"your ip address",
	"has been used for unauthorized accesses",
	"therefore blocked",
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.5845.188 Safari/537.36"

// CheckBlocked returns ErrAccessBlocked when the response body is the site's
// block page.
func CheckBlocked(body string) error {
	lower := strings.ToLower(body)
	for _, phrase := range blockIndicators {
		if !strings.Contains(lower, phrase) {
			return nil
		}
	}
	return ErrAccessBlocked
}

// Scraper fetches listing pages and expands each headline into one or more
// incidents via the headline parser.
type Scraper struct {
	client  *http.Client
	baseURL string
	parser  *headline.Parser
	metrics *observability.Metrics

	// Verbose enables progress logging during crawls.
	Verbose bool
}

// New returns a Scraper rooted at baseURL. metrics may be nil.
func New(baseURL string, parser *headline.Parser, metrics *observability.Metrics) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		parser:  parser,
		metrics: metrics,
	}
}

// FetchPage retrieves and parses a single listing page.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pageURL, err)
	}
	if err := CheckBlocked(string(body)); err != nil {
		return nil, err
	}

	return ParsePage(strings.NewReader(string(body)), s.baseURL)
}

// Incidents expands the headlines on a page into incident records, one per
// parsed entry.
func (s *Scraper) Incidents(page *Page) []incident.Incident {
	var incidents []incident.Incident
	for _, h := range page.Headlines {
		entries := s.parser.ProcessTitle(h.Title)
		if s.metrics != nil {
			s.metrics.HeadlinesParsed.Inc()
			for _, e := range entries {
				if e.Airline == headline.Unknown {
					s.metrics.UnknownAirline.Inc()
				}
				if e.Aircraft == headline.Unknown {
					s.metrics.UnknownAircraft.Inc()
				}
			}
		}
		for _, e := range entries {
			incidents = append(incidents, incident.FromEntry(e, h.Category, h.URL))
		}
	}
	return incidents
}

// CrawlConfig paces a multi-page crawl.
type CrawlConfig struct {
	MaxPages int
	Delay    time.Duration
}

// CrawlStats summarizes a finished crawl.
type CrawlStats struct {
	Pages     int
	Headlines int
	Incidents int
}

// Crawl walks listing pages from the base URL, following pagination links up
// to cfg.MaxPages, and hands each page's incidents to sink. A failed page
// fetch ends the crawl without error; ErrAccessBlocked and sink errors are
// returned to the caller.
func (s *Scraper) Crawl(ctx context.Context, cfg CrawlConfig, sink func(context.Context, []incident.Incident) error) (*CrawlStats, error) {
	stats := &CrawlStats{}
	currentURL := s.baseURL

	for stats.Pages < cfg.MaxPages && currentURL != "" {
		if s.Verbose {
			log.Printf("scraping page %d: %s", stats.Pages+1, currentURL)
		}

		page, err := s.FetchPage(ctx, currentURL)
		if err != nil {
			if errors.Is(err, ErrAccessBlocked) {
				return stats, err
			}
			if s.metrics != nil {
				s.metrics.FetchErrors.Inc()
			}
			log.Printf("error fetching %s: %v (stopping crawl)", currentURL, err)
			stats.Pages++
			break
		}

		stats.Pages++
		stats.Headlines += len(page.Headlines)
		if s.metrics != nil {
			s.metrics.PagesScraped.Inc()
			s.metrics.LastScrape.SetToCurrentTime()
		}

		incidents := s.Incidents(page)
		stats.Incidents += len(incidents)
		if len(incidents) > 0 && sink != nil {
			if err := sink(ctx, incidents); err != nil {
				return stats, err
			}
		}

		currentURL = page.NextURL
		if currentURL != "" && stats.Pages < cfg.MaxPages && cfg.Delay > 0 {
			if s.Verbose {
				log.Printf("pausing for %s", cfg.Delay)
			}
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	return stats, nil
}
