// Package valuation runs the scrape, extract and estimate steps for one query.
package valuation

import (
	"context"
	"fmt"
	"log"
	"sync"

	"carvaluator/internal/extract"
	"carvaluator/internal/llm"
	"carvaluator/internal/models"
	"carvaluator/internal/regression"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Scraper returns the search page markup for a query
type Scraper interface {
	Scrape(ctx context.Context, q models.SearchQuery) (string, error)
}

// FragmentExtractor turns markup into fragments, positionally or grouped per listing
type FragmentExtractor interface {
	Page(markup string) (models.Fragments, error)
	Listings(markup string) ([]models.Listing, error)
}

// GenerationResolver answers with the generation year range of a vehicle
type GenerationResolver interface {
	ResolveGeneration(ctx context.Context, make, model string, year int, city string) (string, error)
}

// InsightWriter produces optional commentary for an estimate
type InsightWriter interface {
	Insights(ctx context.Context, kind llm.Kind, vars llm.Vars) (string, error)
}

// Exporter persists the clean records of a run
type Exporter interface {
	Export(records []models.VehicleRecord) error
}

// Deps are the collaborators of a Service. Resolver, Insights and Exporter may be nil.
type Deps struct {
	Scraper   Scraper
	Extractor FragmentExtractor
	Regressor regression.Regressor
	Resolver  GenerationResolver
	Insights  InsightWriter
	Exporter  Exporter
}

// Options tune extraction and estimation
type Options struct {
	Keyed        bool
	YearMin      int
	YearMax      int
	PriceFloor   int
	FallbackSpan int
}

// DefaultOptions returns the positional mode with default bounds
func DefaultOptions() Options {
	return Options{
		YearMin:      extract.DefaultYearMin,
		YearMax:      extract.DefaultYearMax,
		PriceFloor:   extract.DefaultPriceFloor,
		FallbackSpan: extract.DefaultFallbackSpan,
	}
}

// Service runs valuations one at a time
type Service struct {
	deps Deps
	opts Options

	mu          sync.Mutex
	ran         bool
	last        *models.Estimate
	lastRecords []models.VehicleRecord
}

// NewService creates a Service. Scraper and Extractor are required; a nil Regressor uses OLS.
func NewService(deps Deps, opts Options) *Service {
	if deps.Regressor == nil {
		deps.Regressor = regression.OLS{}
	}
	return &Service{deps: deps, opts: opts}
}

// Estimate scrapes, extracts and values the vehicle described by q
func (s *Service) Estimate(ctx context.Context, q models.SearchQuery) (*models.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("🚗 Valuing %d %s %s (%d km) in %s", q.Year, q.Make, q.Model, q.Mileage, q.City)

	markup, err := s.deps.Scraper.Scrape(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape: %w", err)
	}

	result, err := s.extract(markup, q)
	if err != nil {
		return nil, err
	}
	s.ran = true
	s.lastRecords = result.Clean
	log.Printf("📊 %d listings matched, %d kept after filtering, %d titles skipped",
		len(result.Records), len(result.Clean), len(result.Skipped))

	if s.deps.Exporter != nil {
		if err := s.deps.Exporter.Export(result.Clean); err != nil {
			log.Printf("⚠️  Export failed: %v", err)
		}
	}

	gen, source := ResolveWithFallback(ctx, s.deps.Resolver, q, s.fallbackSpan())
	log.Printf("📅 Generation %d-%d (%s)", gen.Start, gen.End, source)

	est, err := s.estimate(q, result.Clean, gen)
	if err != nil {
		return nil, err
	}
	est.GenerationSource = source

	if s.deps.Insights != nil {
		vars := llm.Vars{Year: q.Year, Make: q.Make, Model: q.Model, Mileage: q.Mileage, City: q.City}
		text, err := s.deps.Insights.Insights(ctx, llm.KindPriceAnalysis, vars)
		if err != nil {
			log.Printf("⚠️  Insights unavailable: %v", err)
		} else {
			est.Insights = text
		}
	}

	log.Printf("✅ Estimated %s %s at %.0f from %d comparables", q.Make, q.Model, est.FinalPrice, est.Comparables)
	s.last = est
	return est, nil
}

func (s *Service) extract(markup string, q models.SearchQuery) (extract.Result, error) {
	opts := extract.Options{
		Matcher: extract.Matcher{Make: q.Make, Model: q.Model, YearMin: s.opts.YearMin, YearMax: s.opts.YearMax},
		Filter:  extract.FilterOptions{PriceFloor: s.opts.PriceFloor},
	}
	if opts.Matcher.YearMin == 0 && opts.Matcher.YearMax == 0 {
		opts.Matcher = extract.NewMatcher(q.Make, q.Model)
	}

	if s.opts.Keyed {
		listings, err := s.deps.Extractor.Listings(markup)
		if err != nil {
			return extract.Result{}, fmt.Errorf("failed to extract listings: %w", err)
		}
		return extract.RunListings(listings, opts)
	}

	frags, err := s.deps.Extractor.Page(markup)
	if err != nil {
		return extract.Result{}, fmt.Errorf("failed to extract fragments: %w", err)
	}
	return extract.Run(frags, opts)
}

func (s *Service) estimate(q models.SearchQuery, clean []models.VehicleRecord, gen models.GenerationRange) (*models.Estimate, error) {
	comps := extract.Reduce(clean, gen, q.Mileage)

	est := &models.Estimate{
		Query:         q,
		Generation:    gen,
		VehiclesFound: len(clean),
		Comparables:   comps.Size(),
		WindowCount:   len(comps.Window),
		Records:       clean,
	}

	if comps.CanRegress() {
		pred, err := s.deps.Regressor.FitPredict(comps.Mileages(), comps.Prices(), float64(q.Mileage))
		switch {
		case err != nil:
			log.Printf("⚠️  Regression skipped: %v", err)
		case pred <= 0:
			log.Printf("⚠️  Regression predicted %.0f, ignoring", pred)
		default:
			est.RegressionPrice = &pred
		}
	}

	if avg, err := comps.WindowMean(); err == nil {
		est.AveragePrice = &avg
	}

	final, err := Combine(est.RegressionPrice, est.AveragePrice)
	if err != nil {
		return nil, err
	}
	est.FinalPrice = final
	return est, nil
}

func (s *Service) fallbackSpan() int {
	if s.opts.FallbackSpan > 0 {
		return s.opts.FallbackSpan
	}
	return extract.DefaultFallbackSpan
}

// Last returns the most recent successful estimate, or nil
func (s *Service) Last() *models.Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HasRun reports whether any run got past extraction, even one that kept no records
func (s *Service) HasRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ran
}

// LastRecords returns the clean records of the most recent run, including runs that could not
// produce an estimate
func (s *Service) LastRecords() []models.VehicleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.VehicleRecord, len(s.lastRecords))
	copy(out, s.lastRecords)
	return out
}

// ResolveWithFallback asks resolver for the generation of q and falls back to a window of span
// years around q.Year when the resolver is missing, fails or answers with something unparseable.
func ResolveWithFallback(ctx context.Context, resolver GenerationResolver, q models.SearchQuery, span int) (models.GenerationRange, string) {
	fallback := extract.FallbackGeneration(q.Year, span)
	if resolver == nil {
		return fallback, SourceFallback
	}

	answer, err := resolver.ResolveGeneration(ctx, q.Make, q.Model, q.Year, q.City)
	if err != nil {
		log.Printf("⚠️  Generation lookup failed: %v", err)
		return fallback, SourceFallback
	}

	gen, err := extract.ParseGenerationRange(answer)
	if err != nil {
		log.Printf("⚠️  %v", err)
		return fallback, SourceFallback
	}
	return gen, SourceLLM
}

// Combine averages the available price signals. Without any signal it returns
// extract.ErrNoComparableData.
func Combine(regressionPrice, averagePrice *float64) (float64, error) {
	var sum float64
	n := 0
	for _, p := range []*float64{regressionPrice, averagePrice} {
		if p != nil {
			sum += *p
			n++
		}
	}
	if n == 0 {
		return 0, extract.ErrNoComparableData
	}
	return sum / float64(n), nil
}
