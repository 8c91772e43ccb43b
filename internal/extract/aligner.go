package extract

import (
	"regexp"

	"carvaluator/internal/models"
)

var (
	locationPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*, [A-Z]{2}$`)
	mileagePattern  = regexp.MustCompile(`^(\d+)K (km|miles)$`)
)

// noiseFragments are UI chrome strings that show up inside the location/mileage stream
var noiseFragments = map[string]struct{}{
	"Log in":                {},
	"Log In":                {},
	"Log in to Facebook":    {},
	"Create new account":    {},
	"Forgot password?":      {},
	"Forgot account?":       {},
	"Email or phone number": {},
	"Password":              {},
	"See more on Facebook":  {},
	"Marketplace":           {},
}

// IsNoise reports whether a fragment is known page chrome
func IsNoise(fragment string) bool {
	_, ok := noiseFragments[fragment]
	return ok
}

// IsLocation reports whether a fragment looks like "City, XX"
func IsLocation(fragment string) bool {
	return locationPattern.MatchString(fragment)
}

// IsMileage reports whether a fragment looks like "NK km" or "NK miles"
func IsMileage(fragment string) bool {
	return mileagePattern.MatchString(fragment)
}

// Align scans the mixed stream once and pairs every location with the mileage token directly
// after it. A location not followed by a mileage token gets SentinelMileage so that a missing
// fragment never shifts the pairs that come later. Noise and unmatched fragments are dropped.
func Align(mixed []string) []models.AlignedPair {
	pairs := make([]models.AlignedPair, 0, len(mixed)/2)

	i := 0
	for i < len(mixed) {
		fragment := mixed[i]

		switch {
		case IsNoise(fragment):
			i++
		case IsLocation(fragment):
			pair := models.AlignedPair{Location: fragment, MileageToken: models.SentinelMileage}
			if i+1 < len(mixed) && IsMileage(mixed[i+1]) {
				pair.MileageToken = mixed[i+1]
				i += 2
			} else {
				i++
			}
			pairs = append(pairs, pair)
		default:
			i++
		}
	}

	return pairs
}

// AlignSplit is Align returning two index-aligned slices
func AlignSplit(mixed []string) (locations []string, tokens []string) {
	return splitPairs(Align(mixed))
}

func splitPairs(pairs []models.AlignedPair) (locations []string, tokens []string) {
	locations = make([]string, len(pairs))
	tokens = make([]string, len(pairs))
	for i, p := range pairs {
		locations[i] = p.Location
		tokens[i] = p.MileageToken
	}
	return locations, tokens
}
