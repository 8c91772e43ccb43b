package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"carvaluator/internal/models"
)

const (
	// WindowTolerance is the mileage distance, in km, a listing may be from the query vehicle
	WindowTolerance = 20000

	// DefaultFallbackSpan is the half-width of the fallback generation window, in years
	DefaultFallbackSpan = 3

	minRegressionPoints = 2
)

var generationPattern = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`)

// ParseGenerationRange reads "<start>-<end>" out of a lookup answer. Surrounding text is allowed,
// a reversed range is rejected.
func ParseGenerationRange(s string) (models.GenerationRange, error) {
	matches := generationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return models.GenerationRange{}, fmt.Errorf("%w: %q", ErrMalformedGeneration, s)
	}

	start, _ := strconv.Atoi(matches[1])
	end, _ := strconv.Atoi(matches[2])
	if start > end {
		return models.GenerationRange{}, fmt.Errorf("%w: %q: start after end", ErrMalformedGeneration, s)
	}

	return models.GenerationRange{Start: start, End: end}, nil
}

// FallbackGeneration returns a symmetric window of span years around year
func FallbackGeneration(year, span int) models.GenerationRange {
	if span < 0 {
		span = 0
	}
	return models.GenerationRange{Start: year - span, End: year + span}
}

// Comparables is the reduced data set the estimator works from
type Comparables struct {
	Generation   models.GenerationRange
	QueryMileage int

	// InGeneration holds records whose year is inside Generation
	InGeneration []models.VehicleRecord

	// Window holds the InGeneration records within WindowTolerance of QueryMileage
	Window []models.VehicleRecord
}

// Reduce narrows records to the generation and to the mileage window around queryMileage
func Reduce(records []models.VehicleRecord, gen models.GenerationRange, queryMileage int) Comparables {
	c := Comparables{Generation: gen, QueryMileage: queryMileage}

	for _, r := range records {
		if !gen.Contains(r.Year) {
			continue
		}
		c.InGeneration = append(c.InGeneration, r)

		if withinWindow(r.Mileage, queryMileage) {
			c.Window = append(c.Window, r)
		}
	}

	return c
}

func withinWindow(mileage, query int) bool {
	diff := mileage - query
	if diff < 0 {
		diff = -diff
	}
	return diff <= WindowTolerance
}

// Size is the number of generation-matched records
func (c Comparables) Size() int {
	return len(c.InGeneration)
}

// CanRegress reports whether there are enough points to fit a regression
func (c Comparables) CanRegress() bool {
	return len(c.InGeneration) >= minRegressionPoints
}

// Mileages returns the regression inputs, parallel to Prices
func (c Comparables) Mileages() []float64 {
	out := make([]float64, len(c.InGeneration))
	for i, r := range c.InGeneration {
		out[i] = float64(r.Mileage)
	}
	return out
}

// Prices returns the regression targets, parallel to Mileages
func (c Comparables) Prices() []float64 {
	out := make([]float64, len(c.InGeneration))
	for i, r := range c.InGeneration {
		out[i] = float64(r.Price)
	}
	return out
}

// WindowMean is the mean price of the mileage window. An empty window returns
// ErrNoComparableData instead of NaN.
func (c Comparables) WindowMean() (float64, error) {
	if len(c.Window) == 0 {
		return 0, fmt.Errorf("%w: no listings within %d km of %d km", ErrNoComparableData, WindowTolerance, c.QueryMileage)
	}

	total := 0
	for _, r := range c.Window {
		total += r.Price
	}
	return float64(total) / float64(len(c.Window)), nil
}
