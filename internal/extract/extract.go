// Package extract rebuilds vehicle records from the flattened text fragments of a marketplace
// search page: it aligns the mixed location/mileage stream, normalizes mileage, joins the
// sequences into records, drops anomalies and narrows the result to a comparable set.
package extract

import "errors"

var (
	// ErrUnrecognizedMileage is returned for a mileage token that is neither "NK km" nor "NK miles"
	ErrUnrecognizedMileage = errors.New("unrecognized mileage token")

	// ErrMalformedGeneration is returned when a generation string is not "<start>-<end>"
	ErrMalformedGeneration = errors.New("malformed generation range")

	// ErrNoComparableData is returned when no listing falls inside the mileage window
	ErrNoComparableData = errors.New("no comparable data")
)
