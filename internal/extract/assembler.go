package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"carvaluator/internal/models"
)

const (
	DefaultYearMin = 1980
	DefaultYearMax = 2025
)

var (
	yearPattern = regexp.MustCompile(`\b\d{4}\b`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// Matcher holds the query a title has to satisfy to become a record
type Matcher struct {
	Make    string
	Model   string
	YearMin int
	YearMax int
}

// NewMatcher returns a matcher for make/model with the default plausible year range
func NewMatcher(make, model string) Matcher {
	return Matcher{
		Make:    make,
		Model:   model,
		YearMin: DefaultYearMin,
		YearMax: DefaultYearMax,
	}
}

// SkipReason explains why a title produced no record
type SkipReason string

const (
	SkipNoYear       SkipReason = "no year in range"
	SkipNoMake       SkipReason = "make not found"
	SkipNoModel      SkipReason = "model not found"
	SkipMissingIndex SkipReason = "no price/mileage/location at index"
	SkipBadPrice     SkipReason = "price has no digits"
	SkipBadMileage   SkipReason = "mileage token not recognized"
)

// Skip records one title that was dropped during assembly
type Skip struct {
	Index  int        `json:"index"`
	Title  string     `json:"title"`
	Reason SkipReason `json:"reason"`
}

// MatchTitle extracts year, make and model from a listing title. ok is false when any of the
// three is missing.
func (m Matcher) MatchTitle(title string) (year int, make, model string, ok bool) {
	lower := strings.ToLower(title)

	year, found := m.findYear(lower)
	if !found {
		return 0, "", "", false
	}

	wantMake := strings.ToLower(strings.TrimSpace(m.Make))
	wantModel := strings.ToLower(strings.TrimSpace(m.Model))
	if wantMake == "" || !strings.Contains(lower, wantMake) {
		return year, "", "", false
	}
	if wantModel == "" || !strings.Contains(lower, wantModel) {
		return year, titleCase(wantMake), "", false
	}

	return year, titleCase(wantMake), titleCase(wantModel), true
}

// titleCase builds a fresh Caser per call, a Caser is not safe to share between goroutines
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func (m Matcher) findYear(lower string) (int, bool) {
	for _, candidate := range yearPattern.FindAllString(lower, -1) {
		year, err := strconv.Atoi(candidate)
		if err != nil {
			continue
		}
		if year >= m.YearMin && year <= m.YearMax {
			return year, true
		}
	}
	return 0, false
}

// ParsePrice strips every non-digit character and parses the rest. "$12,345" becomes 12345.
func ParsePrice(fragment string) (int, bool) {
	digits := nonDigits.ReplaceAllString(fragment, "")
	if digits == "" {
		return 0, false
	}
	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return price, true
}

// Assemble joins the sequences positionally. Titles drive the iteration; a title whose index is
// missing from any of the other sequences yields no record.
func Assemble(titles, prices []string, mileage []int, locations []string, m Matcher) []models.VehicleRecord {
	records, _ := AssembleReport(titles, prices, mileage, locations, m)
	return records
}

// AssembleReport is Assemble that also returns why each dropped title was skipped
func AssembleReport(titles, prices []string, mileage []int, locations []string, m Matcher) ([]models.VehicleRecord, []Skip) {
	return assembleReport(titles, prices, mileage, nil, locations, m)
}

// assembleReport skips titles whose index is in badMileage instead of emitting a record
func assembleReport(titles, prices []string, mileage []int, badMileage map[int]bool, locations []string, m Matcher) ([]models.VehicleRecord, []Skip) {
	var records []models.VehicleRecord
	var skips []Skip

	for i, title := range titles {
		record, reason := assembleOne(i, title, prices, mileage, locations, m)
		if reason == "" && badMileage[i] {
			reason = SkipBadMileage
		}
		if reason != "" {
			skips = append(skips, Skip{Index: i, Title: title, Reason: reason})
			continue
		}
		records = append(records, record)
	}

	return records, skips
}

func assembleOne(i int, title string, prices []string, mileage []int, locations []string, m Matcher) (models.VehicleRecord, SkipReason) {
	year, make, model, ok := m.MatchTitle(title)
	if !ok {
		switch {
		case year == 0:
			return models.VehicleRecord{}, SkipNoYear
		case make == "":
			return models.VehicleRecord{}, SkipNoMake
		default:
			return models.VehicleRecord{}, SkipNoModel
		}
	}

	if i >= len(prices) || i >= len(mileage) || i >= len(locations) {
		return models.VehicleRecord{}, SkipMissingIndex
	}

	price, ok := ParsePrice(prices[i])
	if !ok {
		return models.VehicleRecord{}, SkipBadPrice
	}

	return models.VehicleRecord{
		Year:     year,
		Make:     make,
		Model:    model,
		Price:    price,
		Mileage:  mileage[i],
		Location: locations[i],
	}, ""
}
