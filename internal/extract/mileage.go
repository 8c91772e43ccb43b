package extract

import (
	"fmt"
	"math"
	"strconv"
)

const (
	kmPerThousand    = 1000
	milesPerThousand = 1609 // truncated mile->km factor, kept for output compatibility
)

// NormalizeMileage converts a mileage token into kilometers
func NormalizeMileage(token string) (int, error) {
	matches := mileagePattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedMileage, token)
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnrecognizedMileage, token, err)
	}

	factor := kmPerThousand
	if matches[2] == "miles" {
		factor = milesPerThousand
	}
	if n > math.MaxInt/factor {
		return 0, fmt.Errorf("%w: %q: out of range", ErrUnrecognizedMileage, token)
	}
	return n * factor, nil
}

// NormalizeAll converts every token, failing on the first one it does not recognize
func NormalizeAll(tokens []string) ([]int, error) {
	out := make([]int, len(tokens))
	for i, token := range tokens {
		km, err := NormalizeMileage(token)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		out[i] = km
	}
	return out, nil
}
