// Package app wires the valuation service from configuration.
package app

import (
	"log"

	"carvaluator/internal/cache"
	"carvaluator/internal/config"
	"carvaluator/internal/export"
	"carvaluator/internal/extract"
	"carvaluator/internal/fragments"
	"carvaluator/internal/llm"
	"carvaluator/internal/regression"
	"carvaluator/internal/scraper"
	"carvaluator/internal/valuation"
)

// Overrides are per-invocation switches that take precedence over the config
type Overrides struct {
	Keyed        bool
	DisableLLM   bool
	Insights     bool
	ExportPath   string
	WithLocation bool

	// Source replaces the live browser, e.g. a saved page
	Source scraper.PageSource
}

// App holds the wired service and the resources that need closing
type App struct {
	Service *valuation.Service
	Cache   *cache.MarkupCache

	browser *scraper.MarketplaceScraper
}

// New builds the service and its collaborators
func New(cfg *config.Config, o Overrides) *App {
	a := &App{Cache: cache.New(cfg.CacheDir, cfg.CacheExpiry)}

	source := o.Source
	store := scraper.MarkupStore(a.Cache)
	if source == nil {
		a.browser = scraper.NewMarketplaceScraper(scraper.Options{
			BaseURL:     cfg.BaseURL,
			ChromeBin:   cfg.ChromeBin,
			ScrollCount: cfg.ScrollCount,
			ScrollDelay: cfg.ScrollDelay,
		})
		source = a.browser
	} else {
		store = nil
	}

	deps := valuation.Deps{
		Scraper:   scraper.New(source, store, cfg.BaseURL),
		Extractor: fragments.NewExtractor(),
		Regressor: regression.OLS{},
	}

	if cfg.LLMEnabled() && !o.DisableLLM {
		advisor := llm.NewAdvisor(llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), cfg.LLMIncludeContext)
		deps.Resolver = advisor
		if o.Insights {
			deps.Insights = advisor
		}
		log.Println("🤖 Generation lookup enabled")
	} else {
		log.Println("ℹ️  Generation lookup disabled, using the fallback window")
	}

	exportPath := cfg.ExportPath
	if o.ExportPath != "" {
		exportPath = o.ExportPath
	}
	if exportPath != "" {
		deps.Exporter = export.FileExporter{Path: exportPath, WithLocation: o.WithLocation}
	}

	opts := valuation.Options{
		Keyed:        cfg.Keyed() || o.Keyed,
		YearMin:      cfg.YearMin,
		YearMax:      cfg.YearMax,
		PriceFloor:   cfg.PriceFloor,
		FallbackSpan: extract.DefaultFallbackSpan,
	}
	a.Service = valuation.NewService(deps, opts)
	return a
}

// Close releases the browser if one was started
func (a *App) Close() {
	if a.browser != nil {
		a.browser.Close()
	}
}
