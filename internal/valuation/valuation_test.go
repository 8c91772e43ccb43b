package valuation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvaluator/internal/extract"
	"carvaluator/internal/llm"
	"carvaluator/internal/models"
	"carvaluator/internal/regression"
)

type fakeScraper struct {
	markup string
	err    error
}

func (f fakeScraper) Scrape(context.Context, models.SearchQuery) (string, error) {
	return f.markup, f.err
}

type fakeExtractor struct {
	frags    models.Fragments
	listings []models.Listing
}

func (f fakeExtractor) Page(string) (models.Fragments, error)     { return f.frags, nil }
func (f fakeExtractor) Listings(string) ([]models.Listing, error) { return f.listings, nil }

type fakeResolver struct {
	answer string
	err    error
}

func (f fakeResolver) ResolveGeneration(context.Context, string, string, int, string) (string, error) {
	return f.answer, f.err
}

type fakeInsights struct {
	kind llm.Kind
}

func (f *fakeInsights) Insights(_ context.Context, kind llm.Kind, _ llm.Vars) (string, error) {
	f.kind = kind
	return "Priced fairly for the area.", nil
}

type fakeExporter struct {
	records []models.VehicleRecord
}

func (f *fakeExporter) Export(records []models.VehicleRecord) error {
	f.records = records
	return nil
}

type countingRegressor struct {
	calls  int
	result *float64
}

func (c *countingRegressor) FitPredict(x, y []float64, at float64) (float64, error) {
	c.calls++
	if c.result != nil {
		return *c.result, nil
	}
	return regression.OLS{}.FitPredict(x, y, at)
}

func civicFragments() models.Fragments {
	return models.Fragments{
		Titles: []string{"2015 Honda Civic LX", "2016 Honda Civic EX", "2014 Honda Civic", "2012 Honda Civic"},
		Prices: []string{"CA$10,000", "CA$9,000", "CA$11,000", "CA$6,000"},
		Mixed: []string{
			"Log In", "Calgary, AB", "80K km", "Airdrie, AB", "90K km",
			"Okotoks, AB", "70K km", "Banff, AB", "150K km",
		},
	}
}

func civicQuery() models.SearchQuery {
	return models.SearchQuery{City: "calgary", Make: "honda", Model: "civic", Year: 2015, Mileage: 80000, Transmission: "automatic"}
}

func TestEstimateWithResolvedGeneration(t *testing.T) {
	exporter := &fakeExporter{}
	insights := &fakeInsights{}
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{frags: civicFragments()},
		Resolver:  fakeResolver{answer: "The 9th generation ran 2014-2016."},
		Insights:  insights,
		Exporter:  exporter,
	}, DefaultOptions())

	est, err := svc.Estimate(context.Background(), civicQuery())
	require.NoError(t, err)

	assert.Equal(t, models.GenerationRange{Start: 2014, End: 2016}, est.Generation)
	assert.Equal(t, SourceLLM, est.GenerationSource)
	assert.Equal(t, 4, est.VehiclesFound)
	assert.Equal(t, 3, est.Comparables)
	assert.Equal(t, 3, est.WindowCount)
	require.NotNil(t, est.RegressionPrice)
	require.NotNil(t, est.AveragePrice)
	assert.InDelta(t, 10000, *est.RegressionPrice, 1e-6)
	assert.InDelta(t, 10000, *est.AveragePrice, 1e-6)
	assert.InDelta(t, 10000, est.FinalPrice, 1e-6)
	assert.Equal(t, "Priced fairly for the area.", est.Insights)
	assert.Equal(t, llm.KindPriceAnalysis, insights.kind)
	assert.Len(t, exporter.records, 4)
	assert.Equal(t, "Honda", exporter.records[0].Make)
	assert.Same(t, est, svc.Last())
}

func TestEstimateFallsBackOnMalformedGeneration(t *testing.T) {
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{frags: civicFragments()},
		Resolver:  fakeResolver{answer: "I am not sure"},
	}, DefaultOptions())

	est, err := svc.Estimate(context.Background(), civicQuery())
	require.NoError(t, err)

	assert.Equal(t, models.GenerationRange{Start: 2012, End: 2018}, est.Generation)
	assert.Equal(t, SourceFallback, est.GenerationSource)
	assert.Equal(t, 4, est.Comparables)
	assert.InDelta(t, 10038.71, *est.RegressionPrice, 0.01)
	assert.InDelta(t, 10000, *est.AveragePrice, 1e-6)
	assert.InDelta(t, 10019.35, est.FinalPrice, 0.01)
}

func TestEstimateWithoutComparables(t *testing.T) {
	reg := &countingRegressor{}
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{frags: civicFragments()},
		Regressor: reg,
		Resolver:  fakeResolver{answer: "2012-2012"},
	}, DefaultOptions())

	q := civicQuery()
	q.Year = 2012
	_, err := svc.Estimate(context.Background(), q)
	require.ErrorIs(t, err, extract.ErrNoComparableData)

	assert.Zero(t, reg.calls, "regression must not run with fewer than two points")
	assert.Nil(t, svc.Last())
	assert.True(t, svc.HasRun())
	assert.Len(t, svc.LastRecords(), 4)
}

func TestEstimateWithNoCleanRecordsStillCountsAsRun(t *testing.T) {
	frags := models.Fragments{
		Titles: []string{"2013 Mazda 3 GS"},
		Prices: []string{"CA$7,000"},
		Mixed:  []string{"Calgary, AB", "100K km"},
	}
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{frags: frags},
	}, DefaultOptions())
	require.False(t, svc.HasRun())

	_, err := svc.Estimate(context.Background(), civicQuery())
	require.ErrorIs(t, err, extract.ErrNoComparableData)

	assert.True(t, svc.HasRun())
	assert.Nil(t, svc.Last())
	assert.Empty(t, svc.LastRecords())
}

func TestEstimateIgnoresNonPositivePrediction(t *testing.T) {
	negative := -500.0
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{frags: civicFragments()},
		Regressor: &countingRegressor{result: &negative},
		Resolver:  fakeResolver{answer: "2014-2016"},
	}, DefaultOptions())

	est, err := svc.Estimate(context.Background(), civicQuery())
	require.NoError(t, err)
	assert.Nil(t, est.RegressionPrice)
	assert.InDelta(t, 10000, est.FinalPrice, 1e-6)
}

func TestEstimateKeyedMode(t *testing.T) {
	listings := []models.Listing{
		{Index: 0, Title: "2015 Honda Civic", Price: "CA$10,000", Mixed: []string{"Calgary, AB", "80K km"}},
		{Index: 1, Title: "2016 Honda Civic", Price: "CA$9,000", Mixed: []string{"Airdrie, AB"}},
		{Index: 2, Title: "2014 Honda Civic", Price: "CA$11,000", Mixed: []string{"Okotoks, AB", "70K km"}},
	}
	opts := DefaultOptions()
	opts.Keyed = true
	svc := NewService(Deps{
		Scraper:   fakeScraper{markup: "<html></html>"},
		Extractor: fakeExtractor{listings: listings},
		Resolver:  fakeResolver{answer: "2014-2016"},
	}, opts)

	est, err := svc.Estimate(context.Background(), civicQuery())
	require.NoError(t, err)

	// the listing without mileage is dropped by the filter, the others keep their own values
	require.Len(t, est.Records, 2)
	assert.Equal(t, 80000, est.Records[0].Mileage)
	assert.Equal(t, "Okotoks, AB", est.Records[1].Location)
	assert.Equal(t, 70000, est.Records[1].Mileage)
	assert.InDelta(t, 10500, *est.AveragePrice, 1e-6)
}

func TestEstimateScrapeError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewService(Deps{Scraper: fakeScraper{err: boom}, Extractor: fakeExtractor{}}, DefaultOptions())

	_, err := svc.Estimate(context.Background(), civicQuery())
	assert.ErrorIs(t, err, boom)
	assert.False(t, svc.HasRun())
}

func TestResolveWithFallback(t *testing.T) {
	q := civicQuery()

	gen, src := ResolveWithFallback(context.Background(), nil, q, 3)
	assert.Equal(t, models.GenerationRange{Start: 2012, End: 2018}, gen)
	assert.Equal(t, SourceFallback, src)

	gen, src = ResolveWithFallback(context.Background(), fakeResolver{err: errors.New("down")}, q, 2)
	assert.Equal(t, models.GenerationRange{Start: 2013, End: 2017}, gen)
	assert.Equal(t, SourceFallback, src)

	gen, src = ResolveWithFallback(context.Background(), fakeResolver{answer: "2016-2012"}, q, 1)
	assert.Equal(t, models.GenerationRange{Start: 2014, End: 2016}, gen)
	assert.Equal(t, SourceFallback, src)

	gen, src = ResolveWithFallback(context.Background(), fakeResolver{answer: "2012 – 2015"}, q, 3)
	assert.Equal(t, models.GenerationRange{Start: 2012, End: 2015}, gen)
	assert.Equal(t, SourceLLM, src)
}

func TestCombine(t *testing.T) {
	a, b := 9000.0, 11000.0

	got, err := Combine(&a, &b)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got)

	got, err = Combine(nil, &b)
	require.NoError(t, err)
	assert.Equal(t, 11000.0, got)

	got, err = Combine(&a, nil)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, got)

	_, err = Combine(nil, nil)
	assert.ErrorIs(t, err, extract.ErrNoComparableData)
}
