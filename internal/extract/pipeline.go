package extract

import (
	"carvaluator/internal/models"
)

// Options configures one pipeline run
type Options struct {
	Matcher Matcher
	Filter  FilterOptions
}

// DefaultOptions returns options for make/model with default year range and filter
func DefaultOptions(make, model string) Options {
	return Options{
		Matcher: NewMatcher(make, model),
		Filter:  DefaultFilterOptions(),
	}
}

// Result holds every stage's output of one run
type Result struct {
	Pairs   []models.AlignedPair   `json:"pairs"`
	Records []models.VehicleRecord `json:"records"`
	Clean   []models.VehicleRecord `json:"clean"`
	Skipped []Skip                 `json:"skipped,omitempty"`
}

// Run aligns the mixed stream, normalizes mileage, assembles records positionally against the
// titles and prices, then filters anomalies.
func Run(frags models.Fragments, opts Options) (Result, error) {
	pairs := Align(frags.Mixed)
	locations, tokens := splitPairs(pairs)

	mileage, bad := normalizeEach(tokens)
	records, skipped := assembleReport(frags.Titles, frags.Prices, mileage, bad, locations, opts.Matcher)

	return Result{
		Pairs:   pairs,
		Records: records,
		Clean:   FilterWith(records, opts.Filter),
		Skipped: skipped,
	}, nil
}

// RunListings is the keyed variant of Run. Each listing is aligned on its own fragments, so a
// listing with a missing or misclassified fragment cannot shift any other listing.
func RunListings(listings []models.Listing, opts Options) (Result, error) {
	var res Result

	for _, l := range listings {
		pair := models.AlignedPair{MileageToken: models.SentinelMileage}
		if pairs := Align(l.Mixed); len(pairs) > 0 {
			pair = pairs[0]
		}
		res.Pairs = append(res.Pairs, pair)

		km, err := NormalizeMileage(pair.MileageToken)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Index: l.Index, Title: l.Title, Reason: SkipBadMileage})
			continue
		}

		records, skipped := AssembleReport(
			[]string{l.Title}, []string{l.Price}, []int{km}, []string{pair.Location}, opts.Matcher)
		for _, s := range skipped {
			s.Index = l.Index
			res.Skipped = append(res.Skipped, s)
		}
		res.Records = append(res.Records, records...)
	}

	res.Clean = FilterWith(res.Records, opts.Filter)
	return res, nil
}

// normalizeEach converts tokens one by one. Unrecognized tokens leave a zero in place and are
// reported by index so only their own title is dropped.
func normalizeEach(tokens []string) ([]int, map[int]bool) {
	out := make([]int, len(tokens))
	var bad map[int]bool
	for i, token := range tokens {
		km, err := NormalizeMileage(token)
		if err != nil {
			if bad == nil {
				bad = make(map[int]bool)
			}
			bad[i] = true
			continue
		}
		out[i] = km
	}
	return out, bad
}
