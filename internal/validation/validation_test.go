package validation

import (
	"strings"
	"testing"

	"carvaluator/internal/models"
)

func TestValidateCity(t *testing.T) {
	cases := []struct {
		name    string
		city    string
		wantErr string
	}{
		{"empty", "  ", "city is required"},
		{"tooLong", strings.Repeat("a", 51), "city must be at most 50 characters"},
		{"invalidChars", "calgary<script>", "city contains invalid characters"},
		{"valid", "St. John's", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCity(tc.city)
			if tc.wantErr == "" && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("expected error %q, got %v", tc.wantErr, err)
				}
			}
		})
	}
}

func TestValidateVehicleName(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"empty", "", "model is required"},
		{"invalidChars", "civic;drop", "model contains invalid characters"},
		{"hyphen", "F-150", ""},
		{"spaces", "Model 3", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateVehicleName("model", tc.value)
			if tc.wantErr == "" && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("expected error %q, got %v", tc.wantErr, err)
				}
			}
		})
	}
}

func TestValidateYearMileageTransmission(t *testing.T) {
	if err := ValidateYear(1899); err == nil {
		t.Fatalf("expected 1899 to be rejected")
	}
	if err := ValidateYear(2026); err == nil {
		t.Fatalf("expected 2026 to be rejected")
	}
	if err := ValidateYear(2015); err != nil {
		t.Fatalf("expected 2015 to be valid, got %v", err)
	}
	if err := ValidateMileage(-1); err == nil {
		t.Fatalf("expected negative mileage to be rejected")
	}
	if err := ValidateMileage(0); err != nil {
		t.Fatalf("expected zero mileage to be valid, got %v", err)
	}
	if err := ValidateTransmission("CVT"); err == nil {
		t.Fatalf("expected CVT to be rejected")
	}
	if err := ValidateTransmission(" Manual "); err != nil {
		t.Fatalf("expected manual to be valid, got %v", err)
	}
}

func TestValidateSearchQueryNormalizes(t *testing.T) {
	q := &models.SearchQuery{
		City:         " Calgary ",
		Make:         " Honda",
		Model:        "Civic ",
		Year:         2015,
		Transmission: "Automatic",
		Mileage:      80000,
	}
	if err := ValidateSearchQuery(q); err != nil {
		t.Fatalf("expected valid query, got %v", err)
	}
	if q.City != "calgary" || q.Make != "Honda" || q.Model != "Civic" || q.Transmission != "automatic" {
		t.Fatalf("query not normalized: %+v", q)
	}
}

func TestValidateSearchQueryRanges(t *testing.T) {
	base := models.SearchQuery{City: "calgary", Make: "Honda", Model: "Civic", Year: 2015, Transmission: "manual"}

	q := base
	q.MinPrice, q.MaxPrice = 20000, 10000
	if err := ValidateSearchQuery(&q); err == nil || err.Error() != "price range is invalid" {
		t.Fatalf("expected price range error, got %v", err)
	}

	q = base
	q.MinYear, q.MaxYear = 2020, 2010
	if err := ValidateSearchQuery(&q); err == nil || err.Error() != "year range is invalid" {
		t.Fatalf("expected year range error, got %v", err)
	}

	q = base
	q.MinMileage = 50000
	if err := ValidateSearchQuery(&q); err != nil {
		t.Fatalf("open-ended mileage range should be valid, got %v", err)
	}
}
