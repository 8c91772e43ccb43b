package scraper

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"carvaluator/internal/models"
)

const (
	DefaultBaseURL      = "https://www.facebook.com/marketplace/"
	DefaultScrollCount  = 4
	DefaultScrollDelay  = 2 * time.Second
	DefaultCloseTimeout = 5 * time.Second

	closeDialogSelector = `div[aria-label="Close"]`
	scrollScript        = `() => window.scrollTo(0, document.body.scrollHeight)`
	userAgent           = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options tune the browser session
type Options struct {
	BaseURL      string
	ChromeBin    string
	ScrollCount  int
	ScrollDelay  time.Duration
	CloseTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(o.BaseURL, "/") {
		o.BaseURL += "/"
	}
	if o.ScrollCount < 0 {
		o.ScrollCount = 0
	}
	if o.ScrollDelay <= 0 {
		o.ScrollDelay = DefaultScrollDelay
	}
	if o.CloseTimeout <= 0 {
		o.CloseTimeout = DefaultCloseTimeout
	}
	return o
}

// MarketplaceScraper loads marketplace search pages in headless Chromium
type MarketplaceScraper struct {
	opts    Options
	browser *rod.Browser
	mu      sync.Mutex
}

// NewMarketplaceScraper creates a scraper; the browser is launched on first use
func NewMarketplaceScraper(opts Options) *MarketplaceScraper {
	return &MarketplaceScraper{opts: opts.withDefaults()}
}

// BuildSearchURL renders the search URL for q. Zero-valued filters are left out, the query
// parameter is always last.
func BuildSearchURL(baseURL string, q models.SearchQuery) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	var params []string
	add := func(name string, v int) {
		if v > 0 {
			params = append(params, name+"="+strconv.Itoa(v))
		}
	}
	add("min_price", q.MinPrice)
	add("max_price", q.MaxPrice)
	add("min_mileage", q.MinMileage)
	add("max_mileage", q.MaxMileage)
	add("min_year", q.MinYear)
	add("max_year", q.MaxYear)
	add("days_listed", q.DaysListed)
	if t := strings.TrimSpace(q.Transmission); t != "" {
		params = append(params, "transmission="+url.QueryEscape(strings.ToLower(t)))
	}
	terms := url.PathEscape(strings.TrimSpace(q.Make)) + "%20" + url.PathEscape(strings.TrimSpace(q.Model))
	params = append(params, "query="+terms)

	city := url.PathEscape(strings.ToLower(strings.TrimSpace(q.City)))
	return baseURL + city + "/search?" + strings.Join(params, "&")
}

// Scrape loads the search page for q, dismisses the login dialog, scrolls to load more
// listings and returns the final markup
func (s *MarketplaceScraper) Scrape(ctx context.Context, q models.SearchQuery) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.initBrowser(); err != nil {
		return "", fmt.Errorf("failed to initialize browser: %w", err)
	}

	page, err := stealth.Page(s.browser)
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	searchURL := BuildSearchURL(s.opts.BaseURL, q)
	fmt.Printf("🔍 Loading %s\n", searchURL)
	if err := page.Navigate(searchURL); err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page load failed: %w", err)
	}

	s.dismissDialog(page)

	for i := 0; i < s.opts.ScrollCount; i++ {
		if _, err := page.Eval(scrollScript); err != nil {
			return "", fmt.Errorf("scroll %d failed: %w", i+1, err)
		}
		fmt.Printf("  ↓ Scrolled %d/%d\n", i+1, s.opts.ScrollCount)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.opts.ScrollDelay):
		}
	}

	markup, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page markup: %w", err)
	}
	fmt.Printf("✅ Captured %d bytes of markup\n", len(markup))
	return markup, nil
}

// dismissDialog closes the login popup when it shows up; its absence is not an error
func (s *MarketplaceScraper) dismissDialog(page *rod.Page) {
	el, err := page.Timeout(s.opts.CloseTimeout).Element(closeDialogSelector)
	if err != nil {
		fmt.Println("ℹ️  No login dialog to dismiss")
		return
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		fmt.Printf("⚠️  Could not dismiss login dialog: %v\n", err)
		return
	}
	fmt.Println("✓ Dismissed login dialog")
}

func (s *MarketplaceScraper) initBrowser() error {
	if s.browser != nil {
		return nil
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("window-size", "1920,1080").
		Set("user-agent", userAgent)

	if chromiumPath := findChromiumPath(s.opts.ChromeBin); chromiumPath != "" {
		fmt.Printf("🔍 Using Chromium at: %s\n", chromiumPath)
		l = l.Bin(chromiumPath)
	}

	if isDockerEnvironment() {
		fmt.Println("🐳 Docker environment detected, applying container-specific settings")
		l = l.Set("disable-setuid-sandbox").
			Set("no-first-run").
			Set("disable-default-apps").
			Set("single-process")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.browser = browser

	fmt.Println("✅ Browser initialized successfully")
	return nil
}

// Close shuts the browser down
func (s *MarketplaceScraper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
}

// findChromiumPath prefers the configured binary, then common install locations
func findChromiumPath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/opt/google/chrome/chrome",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func isDockerEnvironment() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	if data, err := os.ReadFile("/proc/1/cgroup"); err == nil {
		return strings.Contains(string(data), "docker") || strings.Contains(string(data), "containerd")
	}
	return false
}
