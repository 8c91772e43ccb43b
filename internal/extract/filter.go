package extract

import "carvaluator/internal/models"

// DefaultPriceFloor is the price at or below which a listing is treated as spam
const DefaultPriceFloor = 100

// placeholderPrices are the values sellers type into boosted listings that have no real price
var placeholderPrices = map[int]struct{}{
	1:       {},
	12:      {},
	123:     {},
	1234:    {},
	12345:   {},
	123456:  {},
	1234567: {},
}

// FilterOptions tunes the anomaly filter
type FilterOptions struct {
	PriceFloor int
}

// DefaultFilterOptions returns the filter settings used by Filter
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{PriceFloor: DefaultPriceFloor}
}

// IsPlaceholderPrice reports whether price is one of the sequential placeholder values
func IsPlaceholderPrice(price int) bool {
	_, ok := placeholderPrices[price]
	return ok
}

// Filter drops anomalous records using the default options
func Filter(records []models.VehicleRecord) []models.VehicleRecord {
	return FilterWith(records, DefaultFilterOptions())
}

// FilterWith drops records with a placeholder price, zero mileage (mileage unknown) or a price
// at or below the floor. Records are never modified.
func FilterWith(records []models.VehicleRecord, opts FilterOptions) []models.VehicleRecord {
	kept := make([]models.VehicleRecord, 0, len(records))
	for _, r := range records {
		if IsPlaceholderPrice(r.Price) {
			continue
		}
		if r.Mileage == 0 {
			continue
		}
		if r.Price <= opts.PriceFloor {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
