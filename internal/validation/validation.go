package validation

import (
	"fmt"
	"regexp"
	"strings"

	"carvaluator/internal/models"
)

const (
	MinYear = 1900
	MaxYear = 2025
)

var (
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s.'&+-]+$`)
	cityPattern = regexp.MustCompile(`^[a-zA-Z0-9\s.'-]+$`)
)

// ValidateCity checks the marketplace city slug or name
func ValidateCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return fmt.Errorf("city is required")
	}
	if len(city) > 50 {
		return fmt.Errorf("city must be at most 50 characters")
	}
	if !cityPattern.MatchString(city) {
		return fmt.Errorf("city contains invalid characters")
	}
	return nil
}

// ValidateVehicleName validates a make or model; field names the value in the error
func ValidateVehicleName(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > 40 {
		return fmt.Errorf("%s must be at most 40 characters", field)
	}
	if !namePattern.MatchString(value) {
		return fmt.Errorf("%s contains invalid characters", field)
	}
	return nil
}

// ValidateYear checks the model year
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return nil
}

// ValidateMileage checks the odometer reading in km
func ValidateMileage(mileage int) error {
	if mileage < 0 {
		return fmt.Errorf("mileage must not be negative")
	}
	return nil
}

// ValidateTransmission accepts automatic or manual, case-insensitive
func ValidateTransmission(transmission string) error {
	switch strings.ToLower(strings.TrimSpace(transmission)) {
	case "automatic", "manual":
		return nil
	}
	return fmt.Errorf("transmission must be automatic or manual")
}

// ValidateSearchQuery runs every field check and normalizes the query in place
func ValidateSearchQuery(q *models.SearchQuery) error {
	if err := ValidateCity(q.City); err != nil {
		return err
	}
	if err := ValidateVehicleName("make", q.Make); err != nil {
		return err
	}
	if err := ValidateVehicleName("model", q.Model); err != nil {
		return err
	}
	if err := ValidateYear(q.Year); err != nil {
		return err
	}
	if err := ValidateMileage(q.Mileage); err != nil {
		return err
	}
	if err := ValidateTransmission(q.Transmission); err != nil {
		return err
	}
	if q.MinPrice < 0 || q.MaxPrice < 0 || (q.MaxPrice > 0 && q.MinPrice > q.MaxPrice) {
		return fmt.Errorf("price range is invalid")
	}
	if q.MinMileage < 0 || q.MaxMileage < 0 || (q.MaxMileage > 0 && q.MinMileage > q.MaxMileage) {
		return fmt.Errorf("mileage range is invalid")
	}
	if q.MinYear != 0 && q.MaxYear != 0 && q.MinYear > q.MaxYear {
		return fmt.Errorf("year range is invalid")
	}
	if q.DaysListed < 0 {
		return fmt.Errorf("days listed must not be negative")
	}

	q.City = strings.ToLower(strings.TrimSpace(q.City))
	q.Make = strings.TrimSpace(q.Make)
	q.Model = strings.TrimSpace(q.Model)
	q.Transmission = strings.ToLower(strings.TrimSpace(q.Transmission))
	return nil
}
