package extract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvaluator/internal/models"
)

func TestParseGenerationRange(t *testing.T) {
	gen, err := ParseGenerationRange("2010-2015")
	require.NoError(t, err)
	assert.Equal(t, models.GenerationRange{Start: 2010, End: 2015}, gen)

	gen, err = ParseGenerationRange("The ninth generation spans 2003 – 2008.")
	require.NoError(t, err)
	assert.Equal(t, models.GenerationRange{Start: 2003, End: 2008}, gen)

	for _, bad := range []string{"", "unknown", "2010", "2015-2010", "10-15"} {
		_, err := ParseGenerationRange(bad)
		assert.ErrorIs(t, err, ErrMalformedGeneration, bad)
	}
}

func TestFallbackGeneration(t *testing.T) {
	assert.Equal(t, models.GenerationRange{Start: 2002, End: 2008}, FallbackGeneration(2005, DefaultFallbackSpan))
	assert.Equal(t, models.GenerationRange{Start: 2005, End: 2005}, FallbackGeneration(2005, -1))
}

func TestReduceGenerationFilter(t *testing.T) {
	records := []models.VehicleRecord{
		{Year: 2009, Price: 5000, Mileage: 100000},
		{Year: 2010, Price: 6000, Mileage: 100000},
		{Year: 2015, Price: 9000, Mileage: 100000},
		{Year: 2016, Price: 11000, Mileage: 100000},
	}
	gen, err := ParseGenerationRange("2010-2015")
	require.NoError(t, err)

	c := Reduce(records, gen, 100000)

	assert.Equal(t, []models.VehicleRecord{records[1], records[2]}, c.InGeneration)
	assert.Equal(t, 2, c.Size())
	assert.True(t, c.CanRegress())
	assert.Equal(t, []float64{100000, 100000}, c.Mileages())
	assert.Equal(t, []float64{6000, 9000}, c.Prices())
}

func TestReduceMileageWindow(t *testing.T) {
	gen := models.GenerationRange{Start: 2010, End: 2015}
	records := []models.VehicleRecord{
		{Year: 2012, Price: 1000, Mileage: 79999},
		{Year: 2012, Price: 2000, Mileage: 80000},
		{Year: 2012, Price: 3000, Mileage: 100000},
		{Year: 2012, Price: 4000, Mileage: 120000},
		{Year: 2012, Price: 5000, Mileage: 120001},
		{Year: 2020, Price: 9000, Mileage: 100000}, // outside generation
	}

	c := Reduce(records, gen, 100000)

	require.Len(t, c.Window, 3)
	for _, r := range c.Window {
		assert.GreaterOrEqual(t, r.Mileage, 80000)
		assert.LessOrEqual(t, r.Mileage, 120000)
	}

	mean, err := c.WindowMean()
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, mean, 1e-9)
}

func TestWindowMeanEmptyIsExplicit(t *testing.T) {
	c := Reduce([]models.VehicleRecord{{Year: 2012, Price: 5000, Mileage: 300000}}, models.GenerationRange{Start: 2010, End: 2015}, 100000)

	assert.False(t, c.CanRegress())
	assert.Equal(t, 1, c.Size())

	mean, err := c.WindowMean()
	require.ErrorIs(t, err, ErrNoComparableData)
	assert.False(t, math.IsNaN(mean))
	assert.Zero(t, mean)
}
